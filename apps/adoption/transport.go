package adoption

import (
	"context"

	"github.com/jrife/recordkeeper/transport"
)

// ServiceName is the name the application is served under
const ServiceName = "recordkeeper.Adoption"

// Transport describes every operation of service for the
// transport frontends
func (service *Service) Transport() transport.Service {
	return transport.Service{
		Name: ServiceName,
		Methods: []transport.Method{
			transport.Unary("CreateAdopter", service.CreateAdopter),
			transport.NoRequest("ListAdopters", service.ListAdopters),
			transport.Unary("CreatePet", service.CreatePet),
			transport.NoRequest("ListPets", service.ListPets),
			transport.Unary("CreateAdoptionRequest", service.CreateAdoptionRequest),
			transport.NoRequest("ListAdoptionRequests", service.ListAdoptionRequests),
			transport.Unary("ListAdoptionRequestsByPet", func(ctx context.Context, query PetQuery) ([]AdoptionRequest, error) {
				return service.ListAdoptionRequestsByPet(ctx, query.PetID)
			}),
			transport.Unary("CreateDonation", service.CreateDonation),
			transport.NoRequest("ListDonations", service.ListDonations),
		},
	}
}
