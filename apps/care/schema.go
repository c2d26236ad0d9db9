package care

// User is a person tracked by the application. Providers
// referenced by virtual consultations are users too.
type User struct {
	ID        uint64   `json:"id"`
	Name      string   `json:"name"`
	Contact   string   `json:"contact"`
	UserType  UserType `json:"user_type"`
	CreatedAt uint64   `json:"created_at"`
}

// UserPayload creates a User
type UserPayload struct {
	Name     string   `json:"name"`
	Contact  string   `json:"contact"`
	UserType UserType `json:"user_type"`
}

// HealthRecord is one vitals reading for a user
type HealthRecord struct {
	ID            uint64       `json:"id"`
	UserID        uint64       `json:"user_id"`
	HeartRate     uint8        `json:"heart_rate"`
	BloodPressure string       `json:"blood_pressure"`
	ActivityLevel string       `json:"activity_level"`
	Status        HealthStatus `json:"status"`
	RecordedAt    uint64       `json:"recorded_at"`
}

// HealthRecordPayload creates a HealthRecord
type HealthRecordPayload struct {
	UserID        uint64       `json:"user_id"`
	HeartRate     uint8        `json:"heart_rate"`
	BloodPressure string       `json:"blood_pressure"`
	ActivityLevel string       `json:"activity_level"`
	Status        HealthStatus `json:"status"`
}

// MedicationReminder reminds a user to take a medication
type MedicationReminder struct {
	ID             uint64 `json:"id"`
	UserID         uint64 `json:"user_id"`
	MedicationName string `json:"medication_name"`
	Dosage         string `json:"dosage"`
	Schedule       string `json:"schedule"`
	CreatedAt      uint64 `json:"created_at"`
}

// MedicationReminderPayload creates a MedicationReminder
type MedicationReminderPayload struct {
	UserID         uint64 `json:"user_id"`
	MedicationName string `json:"medication_name"`
	Dosage         string `json:"dosage"`
	Schedule       string `json:"schedule"`
}

// VirtualConsultation is an appointment between a user and a provider
type VirtualConsultation struct {
	ID          uint64 `json:"id"`
	UserID      uint64 `json:"user_id"`
	ProviderID  uint64 `json:"provider_id"`
	ScheduledAt uint64 `json:"scheduled_at"`
	Status      string `json:"status"`
	CreatedAt   uint64 `json:"created_at"`
}

// VirtualConsultationPayload creates a VirtualConsultation
type VirtualConsultationPayload struct {
	UserID      uint64 `json:"user_id"`
	ProviderID  uint64 `json:"provider_id"`
	ScheduledAt uint64 `json:"scheduled_at"`
	Status      string `json:"status"`
}

// DietRecord is one meal eaten by a user
type DietRecord struct {
	ID       uint64   `json:"id"`
	UserID   uint64   `json:"user_id"`
	MealType MealType `json:"meal_type"`
	// FoodItems is a comma separated list
	FoodItems  string `json:"food_items"`
	Calories   uint32 `json:"calories"`
	RecordedAt uint64 `json:"recorded_at"`
}

// DietRecordPayload creates a DietRecord
type DietRecordPayload struct {
	UserID    uint64   `json:"user_id"`
	MealType  MealType `json:"meal_type"`
	FoodItems string   `json:"food_items"`
	Calories  uint32   `json:"calories"`
}

// ExerciseRecommendation recommends an exercise to a user
type ExerciseRecommendation struct {
	ID           uint64       `json:"id"`
	UserID       uint64       `json:"user_id"`
	ExerciseType ExerciseType `json:"exercise_type"`
	// Duration is in minutes
	Duration      uint32    `json:"duration"`
	Intensity     Intensity `json:"intensity"`
	RecommendedAt uint64    `json:"recommended_at"`
}

// ExerciseRecommendationPayload creates an ExerciseRecommendation
type ExerciseRecommendationPayload struct {
	UserID       uint64       `json:"user_id"`
	ExerciseType ExerciseType `json:"exercise_type"`
	Duration     uint32       `json:"duration"`
	Intensity    Intensity    `json:"intensity"`
}

// MentalHealthRecord is one mood check-in for a user
type MentalHealthRecord struct {
	ID          uint64      `json:"id"`
	UserID      uint64      `json:"user_id"`
	Mood        Mood        `json:"mood"`
	StressLevel StressLevel `json:"stress_level"`
	Notes       string      `json:"notes"`
	RecordedAt  uint64      `json:"recorded_at"`
}

// MentalHealthRecordPayload creates a MentalHealthRecord
type MentalHealthRecordPayload struct {
	UserID      uint64      `json:"user_id"`
	Mood        Mood        `json:"mood"`
	StressLevel StressLevel `json:"stress_level"`
	Notes       string      `json:"notes"`
}

// FitnessChallenge is a challenge users can join
type FitnessChallenge struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	StartDate   uint64 `json:"start_date"`
	EndDate     uint64 `json:"end_date"`
	CreatedAt   uint64 `json:"created_at"`
}

// FitnessChallengePayload creates a FitnessChallenge
type FitnessChallengePayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	StartDate   uint64 `json:"start_date"`
	EndDate     uint64 `json:"end_date"`
}

// FitnessChallengeParticipant is a user taking part in a challenge
type FitnessChallengeParticipant struct {
	ID          uint64 `json:"id"`
	ChallengeID uint64 `json:"challenge_id"`
	UserID      uint64 `json:"user_id"`
	// Progress is challenge specific, such as steps walked
	Progress  uint32 `json:"progress"`
	UpdatedAt uint64 `json:"updated_at"`
}

// FitnessChallengeParticipantPayload creates a FitnessChallengeParticipant
type FitnessChallengeParticipantPayload struct {
	ChallengeID uint64 `json:"challenge_id"`
	UserID      uint64 `json:"user_id"`
	Progress    uint32 `json:"progress"`
}

// UserQuery selects the records that belong to one user
type UserQuery struct {
	UserID uint64 `json:"user_id"`
}
