package adoption

import (
	"github.com/jrife/recordkeeper/records/wire"
	"github.com/jrife/recordkeeper/storage/collection"
)

// MaxRecordSize bounds the encoded size of every adoption record
const MaxRecordSize = 512

var (
	adopterCodec         = collection.MessageCodec[Adopter](MaxRecordSize)
	petCodec             = collection.MessageCodec[Pet](MaxRecordSize)
	adoptionRequestCodec = collection.MessageCodec[AdoptionRequest](MaxRecordSize)
	donationCodec        = collection.MessageCodec[Donation](MaxRecordSize)
)

// Marshal implements collection.Marshaler
func (adopter Adopter) Marshal() ([]byte, error) {
	var encoder wire.Encoder

	return encoder.
		Uint(1, adopter.ID).
		String(2, adopter.Name).
		String(3, adopter.Email).
		String(4, adopter.Phone).
		String(5, adopter.Address).
		Uint(6, adopter.CreatedAt).
		Bytes(), nil
}

// Unmarshal decodes an Adopter
func (adopter *Adopter) Unmarshal(data []byte) error {
	*adopter = Adopter{}

	return wire.Walk(data, func(field wire.Field) (err error) {
		switch field.Num {
		case 1:
			adopter.ID, err = field.AsUint()
		case 2:
			adopter.Name, err = field.AsString()
		case 3:
			adopter.Email, err = field.AsString()
		case 4:
			adopter.Phone, err = field.AsString()
		case 5:
			adopter.Address, err = field.AsString()
		case 6:
			adopter.CreatedAt, err = field.AsUint()
		}

		return
	})
}

// Marshal implements collection.Marshaler
func (pet Pet) Marshal() ([]byte, error) {
	var encoder wire.Encoder

	return encoder.
		Uint(1, pet.ID).
		String(2, pet.Name).
		String(3, pet.Species).
		String(4, pet.Breed).
		Uint(5, uint64(pet.Age)).
		Uint(6, uint64(pet.Status)).
		Uint(7, pet.CreatedAt).
		Bytes(), nil
}

// Unmarshal decodes a Pet
func (pet *Pet) Unmarshal(data []byte) error {
	*pet = Pet{}

	return wire.Walk(data, func(field wire.Field) (err error) {
		switch field.Num {
		case 1:
			pet.ID, err = field.AsUint()
		case 2:
			pet.Name, err = field.AsString()
		case 3:
			pet.Species, err = field.AsString()
		case 4:
			pet.Breed, err = field.AsString()
		case 5:
			pet.Age, err = field.AsUint32()
		case 6:
			pet.Status, err = wire.AsEnum[PetStatus](field)
		case 7:
			pet.CreatedAt, err = field.AsUint()
		}

		return
	})
}

// Marshal implements collection.Marshaler
func (request AdoptionRequest) Marshal() ([]byte, error) {
	var encoder wire.Encoder

	return encoder.
		Uint(1, request.ID).
		Uint(2, request.AdopterID).
		Uint(3, request.PetID).
		String(4, request.Message).
		Uint(5, uint64(request.Status)).
		Uint(6, request.CreatedAt).
		Bytes(), nil
}

// Unmarshal decodes an AdoptionRequest
func (request *AdoptionRequest) Unmarshal(data []byte) error {
	*request = AdoptionRequest{}

	return wire.Walk(data, func(field wire.Field) (err error) {
		switch field.Num {
		case 1:
			request.ID, err = field.AsUint()
		case 2:
			request.AdopterID, err = field.AsUint()
		case 3:
			request.PetID, err = field.AsUint()
		case 4:
			request.Message, err = field.AsString()
		case 5:
			request.Status, err = wire.AsEnum[RequestStatus](field)
		case 6:
			request.CreatedAt, err = field.AsUint()
		}

		return
	})
}

// Marshal implements collection.Marshaler. Absent references
// are left out of the encoding.
func (donation Donation) Marshal() ([]byte, error) {
	var encoder wire.Encoder

	return encoder.
		Uint(1, donation.ID).
		OptionalUint(2, donation.DonorID).
		OptionalUint(3, donation.PetID).
		Uint(4, donation.Amount).
		String(5, donation.Message).
		Uint(6, donation.CreatedAt).
		Bytes(), nil
}

// Unmarshal decodes a Donation
func (donation *Donation) Unmarshal(data []byte) error {
	*donation = Donation{}

	return wire.Walk(data, func(field wire.Field) (err error) {
		switch field.Num {
		case 1:
			donation.ID, err = field.AsUint()
		case 2:
			donation.DonorID, err = optional(field)
		case 3:
			donation.PetID, err = optional(field)
		case 4:
			donation.Amount, err = field.AsUint()
		case 5:
			donation.Message, err = field.AsString()
		case 6:
			donation.CreatedAt, err = field.AsUint()
		}

		return
	})
}

func optional(field wire.Field) (*uint64, error) {
	v, err := field.AsUint()

	if err != nil {
		return nil, err
	}

	return &v, nil
}
