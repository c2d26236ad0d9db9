package adoption

import "github.com/jrife/recordkeeper/records/enum"

// PetStatus is where a pet stands in the adoption process.
// It is set when the pet is listed.
type PetStatus uint8

const (
	PetStatusAvailable PetStatus = iota
	PetStatusPending
	PetStatusAdopted
)

var petStatuses = enum.Names{"Available", "Pending", "Adopted"}

func (s PetStatus) String() string { return petStatuses.String(uint8(s)) }

// Valid returns true if s is a member of PetStatus
func (s PetStatus) Valid() bool { return petStatuses.Valid(uint8(s)) }

// MarshalText encodes s as its name
func (s PetStatus) MarshalText() ([]byte, error) {
	return petStatuses.MarshalText("pet status", uint8(s))
}

// UnmarshalText decodes a name
func (s *PetStatus) UnmarshalText(text []byte) error {
	v, err := petStatuses.Parse("pet status", text)

	if err != nil {
		return err
	}

	*s = PetStatus(v)

	return nil
}

// RequestStatus is the outcome of an adoption request
type RequestStatus uint8

const (
	RequestStatusPending RequestStatus = iota
	RequestStatusApproved
	RequestStatusRejected
)

var requestStatuses = enum.Names{"Pending", "Approved", "Rejected"}

func (s RequestStatus) String() string { return requestStatuses.String(uint8(s)) }

// Valid returns true if s is a member of RequestStatus
func (s RequestStatus) Valid() bool { return requestStatuses.Valid(uint8(s)) }

// MarshalText encodes s as its name
func (s RequestStatus) MarshalText() ([]byte, error) {
	return requestStatuses.MarshalText("request status", uint8(s))
}

// UnmarshalText decodes a name
func (s *RequestStatus) UnmarshalText(text []byte) error {
	v, err := requestStatuses.Parse("request status", text)

	if err != nil {
		return err
	}

	*s = RequestStatus(v)

	return nil
}
