// Package care is the caregiving and health tracking application.
// Users are elderly people, their caregivers and healthcare
// providers. Every other record belongs to a user.
//
// All records share one identifier sequence, so the identifiers
// within one collection are increasing but not contiguous.
package care

import (
	"context"

	"github.com/jrife/recordkeeper/records"
	"github.com/jrife/recordkeeper/records/validate"
	"github.com/jrife/recordkeeper/storage/collection"
	"github.com/jrife/recordkeeper/storage/kv"
	"github.com/jrife/recordkeeper/storage/regions"
)

// Name identifies the application in configuration
const Name = "care"

// Region ids. They are part of the persisted layout
// and must never be renumbered.
const (
	CounterRegion kv.RegionID = iota
	UsersRegion
	HealthRecordsRegion
	MedicationRemindersRegion
	VirtualConsultationsRegion
	DietRecordsRegion
	ExerciseRecommendationsRegion
	MentalHealthRecordsRegion
	FitnessChallengesRegion
	FitnessChallengeParticipantsRegion
)

// Layout names every region of the application
var Layout = regions.Layout{
	CounterRegion:                      "counter",
	UsersRegion:                        "users",
	HealthRecordsRegion:                "health records",
	MedicationRemindersRegion:          "medication reminders",
	VirtualConsultationsRegion:         "virtual consultations",
	DietRecordsRegion:                  "diet records",
	ExerciseRecommendationsRegion:      "exercise recommendations",
	MentalHealthRecordsRegion:          "mental health records",
	FitnessChallengesRegion:            "fitness challenges",
	FitnessChallengeParticipantsRegion: "fitness challenge participants",
}

const allFieldsRequired = "All fields must be provided."

// Service implements every operation of the application
type Service struct {
	store                        *records.Store
	users                        *collection.Collection[User]
	healthRecords                *collection.Collection[HealthRecord]
	medicationReminders          *collection.Collection[MedicationReminder]
	virtualConsultations         *collection.Collection[VirtualConsultation]
	dietRecords                  *collection.Collection[DietRecord]
	exerciseRecommendations      *collection.Collection[ExerciseRecommendation]
	mentalHealthRecords          *collection.Collection[MentalHealthRecord]
	fitnessChallenges            *collection.Collection[FitnessChallenge]
	fitnessChallengeParticipants *collection.Collection[FitnessChallengeParticipant]
}

// Open opens a store with the application's layout.
// config.Layout and config.Counter are overwritten.
func Open(config records.Config) (*Service, error) {
	config.Layout = Layout
	config.Counter = CounterRegion

	store, err := records.Open(config)

	if err != nil {
		return nil, err
	}

	return New(store), nil
}

// New builds the service on a store whose layout is Layout
func New(store *records.Store) *Service {
	return &Service{
		store:                        store,
		users:                        records.Collection(store, UsersRegion, userCodec),
		healthRecords:                records.Collection(store, HealthRecordsRegion, healthRecordCodec),
		medicationReminders:          records.Collection(store, MedicationRemindersRegion, medicationReminderCodec),
		virtualConsultations:         records.Collection(store, VirtualConsultationsRegion, virtualConsultationCodec),
		dietRecords:                  records.Collection(store, DietRecordsRegion, dietRecordCodec),
		exerciseRecommendations:      records.Collection(store, ExerciseRecommendationsRegion, exerciseRecommendationCodec),
		mentalHealthRecords:          records.Collection(store, MentalHealthRecordsRegion, mentalHealthRecordCodec),
		fitnessChallenges:            records.Collection(store, FitnessChallengesRegion, fitnessChallengeCodec),
		fitnessChallengeParticipants: records.Collection(store, FitnessChallengeParticipantsRegion, fitnessChallengeParticipantCodec),
	}
}

// Store returns the underlying store
func (service *Service) Store() *records.Store {
	return service.store
}

// Close closes the underlying store
func (service *Service) Close() error {
	return service.store.Close()
}

// CreateUser creates a user. Name and contact are required.
func (service *Service) CreateUser(ctx context.Context, payload UserPayload) (User, error) {
	return records.Create(ctx, service.store, service.users, func(ctx context.Context) error {
		if err := validate.NotEmpty("Name and contact cannot be empty", payload.Name, payload.Contact); err != nil {
			return err
		}

		return validate.OneOf("user type", payload.UserType, payload.UserType.Valid())
	}, func(id, createdAt uint64) User {
		return User{
			ID:        id,
			Name:      payload.Name,
			Contact:   payload.Contact,
			UserType:  payload.UserType,
			CreatedAt: createdAt,
		}
	})
}

// ListUsers lists every user
func (service *Service) ListUsers(ctx context.Context) ([]User, error) {
	return records.ListAll(ctx, service.store, service.users, "users")
}

// CreateHealthRecord records vitals for an existing user
func (service *Service) CreateHealthRecord(ctx context.Context, payload HealthRecordPayload) (HealthRecord, error) {
	return records.Create(ctx, service.store, service.healthRecords, func(ctx context.Context) error {
		if err := validate.NotEmpty(allFieldsRequired, payload.BloodPressure, payload.ActivityLevel); err != nil {
			return err
		}

		if err := validate.OneOf("health status", payload.Status, payload.Status.Valid()); err != nil {
			return err
		}

		return validate.References(ctx, validate.Required("User", service.users, payload.UserID))
	}, func(id, recordedAt uint64) HealthRecord {
		return HealthRecord{
			ID:            id,
			UserID:        payload.UserID,
			HeartRate:     payload.HeartRate,
			BloodPressure: payload.BloodPressure,
			ActivityLevel: payload.ActivityLevel,
			Status:        payload.Status,
			RecordedAt:    recordedAt,
		}
	})
}

// ListHealthRecords lists every health record
func (service *Service) ListHealthRecords(ctx context.Context) ([]HealthRecord, error) {
	return records.ListAll(ctx, service.store, service.healthRecords, "health records")
}

// CreateMedicationReminder creates a reminder for an existing user
func (service *Service) CreateMedicationReminder(ctx context.Context, payload MedicationReminderPayload) (MedicationReminder, error) {
	return records.Create(ctx, service.store, service.medicationReminders, func(ctx context.Context) error {
		if err := validate.NotEmpty(allFieldsRequired, payload.MedicationName, payload.Dosage, payload.Schedule); err != nil {
			return err
		}

		return validate.References(ctx, validate.Required("User", service.users, payload.UserID))
	}, func(id, createdAt uint64) MedicationReminder {
		return MedicationReminder{
			ID:             id,
			UserID:         payload.UserID,
			MedicationName: payload.MedicationName,
			Dosage:         payload.Dosage,
			Schedule:       payload.Schedule,
			CreatedAt:      createdAt,
		}
	})
}

// ListMedicationReminders lists every medication reminder
func (service *Service) ListMedicationReminders(ctx context.Context) ([]MedicationReminder, error) {
	return records.ListAll(ctx, service.store, service.medicationReminders, "medication reminders")
}

// CreateVirtualConsultation schedules a consultation between two
// existing users. The user is checked before the provider.
func (service *Service) CreateVirtualConsultation(ctx context.Context, payload VirtualConsultationPayload) (VirtualConsultation, error) {
	return records.Create(ctx, service.store, service.virtualConsultations, func(ctx context.Context) error {
		if err := validate.NotEmpty(allFieldsRequired, payload.Status); err != nil {
			return err
		}

		return validate.References(ctx,
			validate.Required("User", service.users, payload.UserID),
			validate.Required("Provider", service.users, payload.ProviderID),
		)
	}, func(id, createdAt uint64) VirtualConsultation {
		return VirtualConsultation{
			ID:          id,
			UserID:      payload.UserID,
			ProviderID:  payload.ProviderID,
			ScheduledAt: payload.ScheduledAt,
			Status:      payload.Status,
			CreatedAt:   createdAt,
		}
	})
}

// ListVirtualConsultations lists every virtual consultation
func (service *Service) ListVirtualConsultations(ctx context.Context) ([]VirtualConsultation, error) {
	return records.ListAll(ctx, service.store, service.virtualConsultations, "virtual consultations")
}

// CreateDietRecord records a meal for an existing user
func (service *Service) CreateDietRecord(ctx context.Context, payload DietRecordPayload) (DietRecord, error) {
	return records.Create(ctx, service.store, service.dietRecords, func(ctx context.Context) error {
		if err := validate.NotEmpty(allFieldsRequired, payload.FoodItems); err != nil {
			return err
		}

		if err := validate.OneOf("meal type", payload.MealType, payload.MealType.Valid()); err != nil {
			return err
		}

		return validate.References(ctx, validate.Required("User", service.users, payload.UserID))
	}, func(id, recordedAt uint64) DietRecord {
		return DietRecord{
			ID:         id,
			UserID:     payload.UserID,
			MealType:   payload.MealType,
			FoodItems:  payload.FoodItems,
			Calories:   payload.Calories,
			RecordedAt: recordedAt,
		}
	})
}

// ListDietRecords lists every diet record
func (service *Service) ListDietRecords(ctx context.Context) ([]DietRecord, error) {
	return records.ListAll(ctx, service.store, service.dietRecords, "diet records")
}

// ListDietRecordsByUser lists the diet records of one user
func (service *Service) ListDietRecordsByUser(ctx context.Context, userID uint64) ([]DietRecord, error) {
	return records.ListWhere(ctx, service.store, service.dietRecords, "diet records", func(record DietRecord) bool {
		return record.UserID == userID
	})
}

// CreateExerciseRecommendation recommends an exercise to an existing
// user. Duration must not be zero.
func (service *Service) CreateExerciseRecommendation(ctx context.Context, payload ExerciseRecommendationPayload) (ExerciseRecommendation, error) {
	return records.Create(ctx, service.store, service.exerciseRecommendations, func(ctx context.Context) error {
		if err := validate.NonZero(allFieldsRequired, uint64(payload.Duration)); err != nil {
			return err
		}

		if err := validate.OneOf("exercise type", payload.ExerciseType, payload.ExerciseType.Valid()); err != nil {
			return err
		}

		if err := validate.OneOf("intensity", payload.Intensity, payload.Intensity.Valid()); err != nil {
			return err
		}

		return validate.References(ctx, validate.Required("User", service.users, payload.UserID))
	}, func(id, recommendedAt uint64) ExerciseRecommendation {
		return ExerciseRecommendation{
			ID:            id,
			UserID:        payload.UserID,
			ExerciseType:  payload.ExerciseType,
			Duration:      payload.Duration,
			Intensity:     payload.Intensity,
			RecommendedAt: recommendedAt,
		}
	})
}

// ListExerciseRecommendations lists every exercise recommendation
func (service *Service) ListExerciseRecommendations(ctx context.Context) ([]ExerciseRecommendation, error) {
	return records.ListAll(ctx, service.store, service.exerciseRecommendations, "exercise recommendations")
}

// ListExerciseRecommendationsByUser lists the exercise recommendations of one user
func (service *Service) ListExerciseRecommendationsByUser(ctx context.Context, userID uint64) ([]ExerciseRecommendation, error) {
	return records.ListWhere(ctx, service.store, service.exerciseRecommendations, "exercise recommendations", func(recommendation ExerciseRecommendation) bool {
		return recommendation.UserID == userID
	})
}

// CreateMentalHealthRecord records a mood check-in for an existing user
func (service *Service) CreateMentalHealthRecord(ctx context.Context, payload MentalHealthRecordPayload) (MentalHealthRecord, error) {
	return records.Create(ctx, service.store, service.mentalHealthRecords, func(ctx context.Context) error {
		if err := validate.NotEmpty(allFieldsRequired, payload.Notes); err != nil {
			return err
		}

		if err := validate.OneOf("mood", payload.Mood, payload.Mood.Valid()); err != nil {
			return err
		}

		if err := validate.OneOf("stress level", payload.StressLevel, payload.StressLevel.Valid()); err != nil {
			return err
		}

		return validate.References(ctx, validate.Required("User", service.users, payload.UserID))
	}, func(id, recordedAt uint64) MentalHealthRecord {
		return MentalHealthRecord{
			ID:          id,
			UserID:      payload.UserID,
			Mood:        payload.Mood,
			StressLevel: payload.StressLevel,
			Notes:       payload.Notes,
			RecordedAt:  recordedAt,
		}
	})
}

// ListMentalHealthRecords lists every mental health record
func (service *Service) ListMentalHealthRecords(ctx context.Context) ([]MentalHealthRecord, error) {
	return records.ListAll(ctx, service.store, service.mentalHealthRecords, "mental health records")
}

// ListMentalHealthRecordsByUser lists the mental health records of one user
func (service *Service) ListMentalHealthRecordsByUser(ctx context.Context, userID uint64) ([]MentalHealthRecord, error) {
	return records.ListWhere(ctx, service.store, service.mentalHealthRecords, "mental health records", func(record MentalHealthRecord) bool {
		return record.UserID == userID
	})
}

// CreateFitnessChallenge creates a challenge. Name and description
// are required.
func (service *Service) CreateFitnessChallenge(ctx context.Context, payload FitnessChallengePayload) (FitnessChallenge, error) {
	return records.Create(ctx, service.store, service.fitnessChallenges, func(ctx context.Context) error {
		return validate.NotEmpty("Name and description cannot be empty", payload.Name, payload.Description)
	}, func(id, createdAt uint64) FitnessChallenge {
		return FitnessChallenge{
			ID:          id,
			Name:        payload.Name,
			Description: payload.Description,
			StartDate:   payload.StartDate,
			EndDate:     payload.EndDate,
			CreatedAt:   createdAt,
		}
	})
}

// ListFitnessChallenges lists every fitness challenge
func (service *Service) ListFitnessChallenges(ctx context.Context) ([]FitnessChallenge, error) {
	return records.ListAll(ctx, service.store, service.fitnessChallenges, "fitness challenges")
}

// CreateFitnessChallengeParticipant enrolls an existing user in an
// existing challenge. The challenge is checked before the user.
func (service *Service) CreateFitnessChallengeParticipant(ctx context.Context, payload FitnessChallengeParticipantPayload) (FitnessChallengeParticipant, error) {
	return records.Create(ctx, service.store, service.fitnessChallengeParticipants, func(ctx context.Context) error {
		return validate.References(ctx,
			validate.Required("Challenge", service.fitnessChallenges, payload.ChallengeID),
			validate.Required("User", service.users, payload.UserID),
		)
	}, func(id, updatedAt uint64) FitnessChallengeParticipant {
		return FitnessChallengeParticipant{
			ID:          id,
			ChallengeID: payload.ChallengeID,
			UserID:      payload.UserID,
			Progress:    payload.Progress,
			UpdatedAt:   updatedAt,
		}
	})
}

// ListFitnessChallengeParticipants lists every fitness challenge participant
func (service *Service) ListFitnessChallengeParticipants(ctx context.Context) ([]FitnessChallengeParticipant, error) {
	return records.ListAll(ctx, service.store, service.fitnessChallengeParticipants, "fitness challenge participants")
}
