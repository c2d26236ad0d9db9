package care

import (
	"context"

	"github.com/jrife/recordkeeper/transport"
)

// ServiceName is the name the application is served under
const ServiceName = "recordkeeper.Care"

// Transport describes every operation of service for the
// transport frontends
func (service *Service) Transport() transport.Service {
	return transport.Service{
		Name: ServiceName,
		Methods: []transport.Method{
			transport.Unary("CreateUser", service.CreateUser),
			transport.NoRequest("ListUsers", service.ListUsers),
			transport.Unary("CreateHealthRecord", service.CreateHealthRecord),
			transport.NoRequest("ListHealthRecords", service.ListHealthRecords),
			transport.Unary("CreateMedicationReminder", service.CreateMedicationReminder),
			transport.NoRequest("ListMedicationReminders", service.ListMedicationReminders),
			transport.Unary("CreateVirtualConsultation", service.CreateVirtualConsultation),
			transport.NoRequest("ListVirtualConsultations", service.ListVirtualConsultations),
			transport.Unary("CreateDietRecord", service.CreateDietRecord),
			transport.NoRequest("ListDietRecords", service.ListDietRecords),
			transport.Unary("ListDietRecordsByUser", func(ctx context.Context, query UserQuery) ([]DietRecord, error) {
				return service.ListDietRecordsByUser(ctx, query.UserID)
			}),
			transport.Unary("CreateExerciseRecommendation", service.CreateExerciseRecommendation),
			transport.NoRequest("ListExerciseRecommendations", service.ListExerciseRecommendations),
			transport.Unary("ListExerciseRecommendationsByUser", func(ctx context.Context, query UserQuery) ([]ExerciseRecommendation, error) {
				return service.ListExerciseRecommendationsByUser(ctx, query.UserID)
			}),
			transport.Unary("CreateMentalHealthRecord", service.CreateMentalHealthRecord),
			transport.NoRequest("ListMentalHealthRecords", service.ListMentalHealthRecords),
			transport.Unary("ListMentalHealthRecordsByUser", func(ctx context.Context, query UserQuery) ([]MentalHealthRecord, error) {
				return service.ListMentalHealthRecordsByUser(ctx, query.UserID)
			}),
			transport.Unary("CreateFitnessChallenge", service.CreateFitnessChallenge),
			transport.NoRequest("ListFitnessChallenges", service.ListFitnessChallenges),
			transport.Unary("CreateFitnessChallengeParticipant", service.CreateFitnessChallengeParticipant),
			transport.NoRequest("ListFitnessChallengeParticipants", service.ListFitnessChallengeParticipants),
		},
	}
}
