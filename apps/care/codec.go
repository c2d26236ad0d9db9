package care

import (
	"github.com/jrife/recordkeeper/records/wire"
	"github.com/jrife/recordkeeper/storage/collection"
)

// MaxRecordSize bounds the encoded size of every care record
const MaxRecordSize = 512

var (
	userCodec                        = collection.MessageCodec[User](MaxRecordSize)
	healthRecordCodec                = collection.MessageCodec[HealthRecord](MaxRecordSize)
	medicationReminderCodec          = collection.MessageCodec[MedicationReminder](MaxRecordSize)
	virtualConsultationCodec         = collection.MessageCodec[VirtualConsultation](MaxRecordSize)
	dietRecordCodec                  = collection.MessageCodec[DietRecord](MaxRecordSize)
	exerciseRecommendationCodec      = collection.MessageCodec[ExerciseRecommendation](MaxRecordSize)
	mentalHealthRecordCodec          = collection.MessageCodec[MentalHealthRecord](MaxRecordSize)
	fitnessChallengeCodec            = collection.MessageCodec[FitnessChallenge](MaxRecordSize)
	fitnessChallengeParticipantCodec = collection.MessageCodec[FitnessChallengeParticipant](MaxRecordSize)
)

// Marshal implements collection.Marshaler
func (user User) Marshal() ([]byte, error) {
	var encoder wire.Encoder

	return encoder.
		Uint(1, user.ID).
		String(2, user.Name).
		String(3, user.Contact).
		Uint(4, uint64(user.UserType)).
		Uint(5, user.CreatedAt).
		Bytes(), nil
}

// Unmarshal decodes a User
func (user *User) Unmarshal(data []byte) error {
	*user = User{}

	return wire.Walk(data, func(field wire.Field) (err error) {
		switch field.Num {
		case 1:
			user.ID, err = field.AsUint()
		case 2:
			user.Name, err = field.AsString()
		case 3:
			user.Contact, err = field.AsString()
		case 4:
			user.UserType, err = wire.AsEnum[UserType](field)
		case 5:
			user.CreatedAt, err = field.AsUint()
		}

		return
	})
}

// Marshal implements collection.Marshaler
func (record HealthRecord) Marshal() ([]byte, error) {
	var encoder wire.Encoder

	return encoder.
		Uint(1, record.ID).
		Uint(2, record.UserID).
		Uint(3, uint64(record.HeartRate)).
		String(4, record.BloodPressure).
		String(5, record.ActivityLevel).
		Uint(6, uint64(record.Status)).
		Uint(7, record.RecordedAt).
		Bytes(), nil
}

// Unmarshal decodes a HealthRecord
func (record *HealthRecord) Unmarshal(data []byte) error {
	*record = HealthRecord{}

	return wire.Walk(data, func(field wire.Field) (err error) {
		switch field.Num {
		case 1:
			record.ID, err = field.AsUint()
		case 2:
			record.UserID, err = field.AsUint()
		case 3:
			record.HeartRate, err = field.AsUint8()
		case 4:
			record.BloodPressure, err = field.AsString()
		case 5:
			record.ActivityLevel, err = field.AsString()
		case 6:
			record.Status, err = wire.AsEnum[HealthStatus](field)
		case 7:
			record.RecordedAt, err = field.AsUint()
		}

		return
	})
}

// Marshal implements collection.Marshaler
func (reminder MedicationReminder) Marshal() ([]byte, error) {
	var encoder wire.Encoder

	return encoder.
		Uint(1, reminder.ID).
		Uint(2, reminder.UserID).
		String(3, reminder.MedicationName).
		String(4, reminder.Dosage).
		String(5, reminder.Schedule).
		Uint(6, reminder.CreatedAt).
		Bytes(), nil
}

// Unmarshal decodes a MedicationReminder
func (reminder *MedicationReminder) Unmarshal(data []byte) error {
	*reminder = MedicationReminder{}

	return wire.Walk(data, func(field wire.Field) (err error) {
		switch field.Num {
		case 1:
			reminder.ID, err = field.AsUint()
		case 2:
			reminder.UserID, err = field.AsUint()
		case 3:
			reminder.MedicationName, err = field.AsString()
		case 4:
			reminder.Dosage, err = field.AsString()
		case 5:
			reminder.Schedule, err = field.AsString()
		case 6:
			reminder.CreatedAt, err = field.AsUint()
		}

		return
	})
}

// Marshal implements collection.Marshaler
func (consultation VirtualConsultation) Marshal() ([]byte, error) {
	var encoder wire.Encoder

	return encoder.
		Uint(1, consultation.ID).
		Uint(2, consultation.UserID).
		Uint(3, consultation.ProviderID).
		Uint(4, consultation.ScheduledAt).
		String(5, consultation.Status).
		Uint(6, consultation.CreatedAt).
		Bytes(), nil
}

// Unmarshal decodes a VirtualConsultation
func (consultation *VirtualConsultation) Unmarshal(data []byte) error {
	*consultation = VirtualConsultation{}

	return wire.Walk(data, func(field wire.Field) (err error) {
		switch field.Num {
		case 1:
			consultation.ID, err = field.AsUint()
		case 2:
			consultation.UserID, err = field.AsUint()
		case 3:
			consultation.ProviderID, err = field.AsUint()
		case 4:
			consultation.ScheduledAt, err = field.AsUint()
		case 5:
			consultation.Status, err = field.AsString()
		case 6:
			consultation.CreatedAt, err = field.AsUint()
		}

		return
	})
}

// Marshal implements collection.Marshaler
func (record DietRecord) Marshal() ([]byte, error) {
	var encoder wire.Encoder

	return encoder.
		Uint(1, record.ID).
		Uint(2, record.UserID).
		Uint(3, uint64(record.MealType)).
		String(4, record.FoodItems).
		Uint(5, uint64(record.Calories)).
		Uint(6, record.RecordedAt).
		Bytes(), nil
}

// Unmarshal decodes a DietRecord
func (record *DietRecord) Unmarshal(data []byte) error {
	*record = DietRecord{}

	return wire.Walk(data, func(field wire.Field) (err error) {
		switch field.Num {
		case 1:
			record.ID, err = field.AsUint()
		case 2:
			record.UserID, err = field.AsUint()
		case 3:
			record.MealType, err = wire.AsEnum[MealType](field)
		case 4:
			record.FoodItems, err = field.AsString()
		case 5:
			record.Calories, err = field.AsUint32()
		case 6:
			record.RecordedAt, err = field.AsUint()
		}

		return
	})
}

// Marshal implements collection.Marshaler
func (recommendation ExerciseRecommendation) Marshal() ([]byte, error) {
	var encoder wire.Encoder

	return encoder.
		Uint(1, recommendation.ID).
		Uint(2, recommendation.UserID).
		Uint(3, uint64(recommendation.ExerciseType)).
		Uint(4, uint64(recommendation.Duration)).
		Uint(5, uint64(recommendation.Intensity)).
		Uint(6, recommendation.RecommendedAt).
		Bytes(), nil
}

// Unmarshal decodes an ExerciseRecommendation
func (recommendation *ExerciseRecommendation) Unmarshal(data []byte) error {
	*recommendation = ExerciseRecommendation{}

	return wire.Walk(data, func(field wire.Field) (err error) {
		switch field.Num {
		case 1:
			recommendation.ID, err = field.AsUint()
		case 2:
			recommendation.UserID, err = field.AsUint()
		case 3:
			recommendation.ExerciseType, err = wire.AsEnum[ExerciseType](field)
		case 4:
			recommendation.Duration, err = field.AsUint32()
		case 5:
			recommendation.Intensity, err = wire.AsEnum[Intensity](field)
		case 6:
			recommendation.RecommendedAt, err = field.AsUint()
		}

		return
	})
}

// Marshal implements collection.Marshaler
func (record MentalHealthRecord) Marshal() ([]byte, error) {
	var encoder wire.Encoder

	return encoder.
		Uint(1, record.ID).
		Uint(2, record.UserID).
		Uint(3, uint64(record.Mood)).
		Uint(4, uint64(record.StressLevel)).
		String(5, record.Notes).
		Uint(6, record.RecordedAt).
		Bytes(), nil
}

// Unmarshal decodes a MentalHealthRecord
func (record *MentalHealthRecord) Unmarshal(data []byte) error {
	*record = MentalHealthRecord{}

	return wire.Walk(data, func(field wire.Field) (err error) {
		switch field.Num {
		case 1:
			record.ID, err = field.AsUint()
		case 2:
			record.UserID, err = field.AsUint()
		case 3:
			record.Mood, err = wire.AsEnum[Mood](field)
		case 4:
			record.StressLevel, err = wire.AsEnum[StressLevel](field)
		case 5:
			record.Notes, err = field.AsString()
		case 6:
			record.RecordedAt, err = field.AsUint()
		}

		return
	})
}

// Marshal implements collection.Marshaler
func (challenge FitnessChallenge) Marshal() ([]byte, error) {
	var encoder wire.Encoder

	return encoder.
		Uint(1, challenge.ID).
		String(2, challenge.Name).
		String(3, challenge.Description).
		Uint(4, challenge.StartDate).
		Uint(5, challenge.EndDate).
		Uint(6, challenge.CreatedAt).
		Bytes(), nil
}

// Unmarshal decodes a FitnessChallenge
func (challenge *FitnessChallenge) Unmarshal(data []byte) error {
	*challenge = FitnessChallenge{}

	return wire.Walk(data, func(field wire.Field) (err error) {
		switch field.Num {
		case 1:
			challenge.ID, err = field.AsUint()
		case 2:
			challenge.Name, err = field.AsString()
		case 3:
			challenge.Description, err = field.AsString()
		case 4:
			challenge.StartDate, err = field.AsUint()
		case 5:
			challenge.EndDate, err = field.AsUint()
		case 6:
			challenge.CreatedAt, err = field.AsUint()
		}

		return
	})
}

// Marshal implements collection.Marshaler
func (participant FitnessChallengeParticipant) Marshal() ([]byte, error) {
	var encoder wire.Encoder

	return encoder.
		Uint(1, participant.ID).
		Uint(2, participant.ChallengeID).
		Uint(3, participant.UserID).
		Uint(4, uint64(participant.Progress)).
		Uint(5, participant.UpdatedAt).
		Bytes(), nil
}

// Unmarshal decodes a FitnessChallengeParticipant
func (participant *FitnessChallengeParticipant) Unmarshal(data []byte) error {
	*participant = FitnessChallengeParticipant{}

	return wire.Walk(data, func(field wire.Field) (err error) {
		switch field.Num {
		case 1:
			participant.ID, err = field.AsUint()
		case 2:
			participant.ChallengeID, err = field.AsUint()
		case 3:
			participant.UserID, err = field.AsUint()
		case 4:
			participant.Progress, err = field.AsUint32()
		case 5:
			participant.UpdatedAt, err = field.AsUint()
		}

		return
	})
}
