// Package adoption is the pet adoption application. Adopters ask
// to adopt listed pets and anyone may donate, optionally naming
// themselves and a pet.
package adoption

import (
	"context"

	"github.com/jrife/recordkeeper/records"
	"github.com/jrife/recordkeeper/records/validate"
	"github.com/jrife/recordkeeper/storage/collection"
	"github.com/jrife/recordkeeper/storage/kv"
	"github.com/jrife/recordkeeper/storage/regions"
)

// Name identifies the application in configuration
const Name = "adoption"

// Region ids. They are part of the persisted layout
// and must never be renumbered.
const (
	CounterRegion kv.RegionID = iota
	AdoptersRegion
	PetsRegion
	AdoptionRequestsRegion
	DonationsRegion
)

// Layout names every region of the application
var Layout = regions.Layout{
	CounterRegion:          "counter",
	AdoptersRegion:         "adopters",
	PetsRegion:             "pets",
	AdoptionRequestsRegion: "adoption requests",
	DonationsRegion:        "donations",
}

const allFieldsRequired = "All fields must be provided."

// Service implements every operation of the application
type Service struct {
	store            *records.Store
	adopters         *collection.Collection[Adopter]
	pets             *collection.Collection[Pet]
	adoptionRequests *collection.Collection[AdoptionRequest]
	donations        *collection.Collection[Donation]
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
		store:            store,
		adopters:         records.Collection(store, AdoptersRegion, adopterCodec),
		pets:             records.Collection(store, PetsRegion, petCodec),
		adoptionRequests: records.Collection(store, AdoptionRequestsRegion, adoptionRequestCodec),
		donations:        records.Collection(store, DonationsRegion, donationCodec),
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

// CreateAdopter registers an adopter. Name and email are required.
func (service *Service) CreateAdopter(ctx context.Context, payload AdopterPayload) (Adopter, error) {
	return records.Create(ctx, service.store, service.adopters, func(ctx context.Context) error {
		return validate.NotEmpty("Name and email cannot be empty", payload.Name, payload.Email)
	}, func(id, createdAt uint64) Adopter {
		return Adopter{
			ID:        id,
			Name:      payload.Name,
			Email:     payload.Email,
			Phone:     payload.Phone,
			Address:   payload.Address,
			CreatedAt: createdAt,
		}
	})
}

// ListAdopters lists every adopter
func (service *Service) ListAdopters(ctx context.Context) ([]Adopter, error) {
	return records.ListAll(ctx, service.store, service.adopters, "adopters")
}

// CreatePet lists a pet for adoption. Name and species are required.
func (service *Service) CreatePet(ctx context.Context, payload PetPayload) (Pet, error) {
	return records.Create(ctx, service.store, service.pets, func(ctx context.Context) error {
		if err := validate.NotEmpty(allFieldsRequired, payload.Name, payload.Species); err != nil {
			return err
		}

		return validate.OneOf("pet status", payload.Status, payload.Status.Valid())
	}, func(id, createdAt uint64) Pet {
		return Pet{
			ID:        id,
			Name:      payload.Name,
			Species:   payload.Species,
			Breed:     payload.Breed,
			Age:       payload.Age,
			Status:    payload.Status,
			CreatedAt: createdAt,
		}
	})
}

// ListPets lists every pet
func (service *Service) ListPets(ctx context.Context) ([]Pet, error) {
	return records.ListAll(ctx, service.store, service.pets, "pets")
}

// CreateAdoptionRequest files a request by an existing adopter for
// an existing pet. The adopter is checked before the pet.
func (service *Service) CreateAdoptionRequest(ctx context.Context, payload AdoptionRequestPayload) (AdoptionRequest, error) {
	return records.Create(ctx, service.store, service.adoptionRequests, func(ctx context.Context) error {
		if err := validate.NotEmpty(allFieldsRequired, payload.Message); err != nil {
			return err
		}

		if err := validate.OneOf("request status", payload.Status, payload.Status.Valid()); err != nil {
			return err
		}

		return validate.References(ctx,
			validate.Required("Adopter", service.adopters, payload.AdopterID),
			validate.Required("Pet", service.pets, payload.PetID),
		)
	}, func(id, createdAt uint64) AdoptionRequest {
		return AdoptionRequest{
			ID:        id,
			AdopterID: payload.AdopterID,
			PetID:     payload.PetID,
			Message:   payload.Message,
			Status:    payload.Status,
			CreatedAt: createdAt,
		}
	})
}

// ListAdoptionRequests lists every adoption request
func (service *Service) ListAdoptionRequests(ctx context.Context) ([]AdoptionRequest, error) {
	return records.ListAll(ctx, service.store, service.adoptionRequests, "adoption requests")
}

// ListAdoptionRequestsByPet lists the adoption requests for one pet
func (service *Service) ListAdoptionRequestsByPet(ctx context.Context, petID uint64) ([]AdoptionRequest, error) {
	return records.ListWhere(ctx, service.store, service.adoptionRequests, "adoption requests", func(request AdoptionRequest) bool {
		return request.PetID == petID
	})
}

// CreateDonation records a donation. The amount must not be zero.
// The donor and the pet are optional but must exist when given.
func (service *Service) CreateDonation(ctx context.Context, payload DonationPayload) (Donation, error) {
	return records.Create(ctx, service.store, service.donations, func(ctx context.Context) error {
		if err := validate.NonZero(allFieldsRequired, payload.Amount); err != nil {
			return err
		}

		return validate.References(ctx,
			validate.Optional("Donor", service.adopters, payload.DonorID),
			validate.Optional("Pet", service.pets, payload.PetID),
		)
	}, func(id, createdAt uint64) Donation {
		return Donation{
			ID:        id,
			DonorID:   clone(payload.DonorID),
			PetID:     clone(payload.PetID),
			Amount:    payload.Amount,
			Message:   payload.Message,
			CreatedAt: createdAt,
		}
	})
}

// ListDonations lists every donation
func (service *Service) ListDonations(ctx context.Context) ([]Donation, error) {
	return records.ListAll(ctx, service.store, service.donations, "donations")
}

func clone(id *uint64) *uint64 {
	if id == nil {
		return nil
	}

	v := *id

	return &v
}
