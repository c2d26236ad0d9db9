package care

import "github.com/jrife/recordkeeper/records/enum"

// UserType is the role of a user
type UserType uint8

const (
	UserTypeElderly UserType = iota
	UserTypeCaregiver
	UserTypeHealthcareProvider
)

var userTypes = enum.Names{"Elderly", "Caregiver", "HealthcareProvider"}

func (u UserType) String() string { return userTypes.String(uint8(u)) }

// Valid returns true if u is a member of UserType
func (u UserType) Valid() bool { return userTypes.Valid(uint8(u)) }

// MarshalText encodes u as its name
func (u UserType) MarshalText() ([]byte, error) {
	return userTypes.MarshalText("user type", uint8(u))
}

// UnmarshalText decodes a name
func (u *UserType) UnmarshalText(text []byte) error {
	v, err := userTypes.Parse("user type", text)

	if err != nil {
		return err
	}

	*u = UserType(v)

	return nil
}

// HealthStatus summarizes a health record
type HealthStatus uint8

const (
	HealthStatusStable HealthStatus = iota
	HealthStatusCritical
)

var healthStatuses = enum.Names{"Stable", "Critical"}

func (h HealthStatus) String() string { return healthStatuses.String(uint8(h)) }

// Valid returns true if h is a member of HealthStatus
func (h HealthStatus) Valid() bool { return healthStatuses.Valid(uint8(h)) }

// MarshalText encodes h as its name
func (h HealthStatus) MarshalText() ([]byte, error) {
	return healthStatuses.MarshalText("health status", uint8(h))
}

// UnmarshalText decodes a name
func (h *HealthStatus) UnmarshalText(text []byte) error {
	v, err := healthStatuses.Parse("health status", text)

	if err != nil {
		return err
	}

	*h = HealthStatus(v)

	return nil
}

// MealType is the meal a diet record describes
type MealType uint8

const (
	MealTypeBreakfast MealType = iota
	MealTypeLunch
	MealTypeDinner
)

var mealTypes = enum.Names{"Breakfast", "Lunch", "Dinner"}

func (m MealType) String() string { return mealTypes.String(uint8(m)) }

// Valid returns true if m is a member of MealType
func (m MealType) Valid() bool { return mealTypes.Valid(uint8(m)) }

// MarshalText encodes m as its name
func (m MealType) MarshalText() ([]byte, error) {
	return mealTypes.MarshalText("meal type", uint8(m))
}

// UnmarshalText decodes a name
func (m *MealType) UnmarshalText(text []byte) error {
	v, err := mealTypes.Parse("meal type", text)

	if err != nil {
		return err
	}

	*m = MealType(v)

	return nil
}

// ExerciseType is the kind of exercise recommended
type ExerciseType uint8

const (
	ExerciseTypeCardio ExerciseType = iota
	ExerciseTypeStrength
	ExerciseTypeFlexibility
)

var exerciseTypes = enum.Names{"Cardio", "Strength", "Flexibility"}

func (e ExerciseType) String() string { return exerciseTypes.String(uint8(e)) }

// Valid returns true if e is a member of ExerciseType
func (e ExerciseType) Valid() bool { return exerciseTypes.Valid(uint8(e)) }

// MarshalText encodes e as its name
func (e ExerciseType) MarshalText() ([]byte, error) {
	return exerciseTypes.MarshalText("exercise type", uint8(e))
}

// UnmarshalText decodes a name
func (e *ExerciseType) UnmarshalText(text []byte) error {
	v, err := exerciseTypes.Parse("exercise type", text)

	if err != nil {
		return err
	}

	*e = ExerciseType(v)

	return nil
}

// Intensity is how hard a recommended exercise is
type Intensity uint8

const (
	IntensityLow Intensity = iota
	IntensityMedium
	IntensityHigh
)

var intensities = enum.Names{"Low", "Medium", "High"}

func (i Intensity) String() string { return intensities.String(uint8(i)) }

// Valid returns true if i is a member of Intensity
func (i Intensity) Valid() bool { return intensities.Valid(uint8(i)) }

// MarshalText encodes i as its name
func (i Intensity) MarshalText() ([]byte, error) {
	return intensities.MarshalText("intensity", uint8(i))
}

// UnmarshalText decodes a name
func (i *Intensity) UnmarshalText(text []byte) error {
	v, err := intensities.Parse("intensity", text)

	if err != nil {
		return err
	}

	*i = Intensity(v)

	return nil
}

// Mood is the mood a mental health record reports
type Mood uint8

const (
	MoodHappy Mood = iota
	MoodSad
	MoodAnxious
)

var moods = enum.Names{"Happy", "Sad", "Anxious"}

func (m Mood) String() string { return moods.String(uint8(m)) }

// Valid returns true if m is a member of Mood
func (m Mood) Valid() bool { return moods.Valid(uint8(m)) }

// MarshalText encodes m as its name
func (m Mood) MarshalText() ([]byte, error) {
	return moods.MarshalText("mood", uint8(m))
}

// UnmarshalText decodes a name
func (m *Mood) UnmarshalText(text []byte) error {
	v, err := moods.Parse("mood", text)

	if err != nil {
		return err
	}

	*m = Mood(v)

	return nil
}

// StressLevel is the stress a mental health record reports
type StressLevel uint8

const (
	StressLevelLow StressLevel = iota
	StressLevelMedium
	StressLevelHigh
)

var stressLevels = enum.Names{"Low", "Medium", "High"}

func (s StressLevel) String() string { return stressLevels.String(uint8(s)) }

// Valid returns true if s is a member of StressLevel
func (s StressLevel) Valid() bool { return stressLevels.Valid(uint8(s)) }

// MarshalText encodes s as its name
func (s StressLevel) MarshalText() ([]byte, error) {
	return stressLevels.MarshalText("stress level", uint8(s))
}

// UnmarshalText decodes a name
func (s *StressLevel) UnmarshalText(text []byte) error {
	v, err := stressLevels.Parse("stress level", text)

	if err != nil {
		return err
	}

	*s = StressLevel(v)

	return nil
}
