package adoption

// Adopter is a person who can adopt pets or donate
type Adopter struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	CreatedAt uint64 `json:"created_at"`
}

// AdopterPayload creates an Adopter
type AdopterPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Pet is an animal listed for adoption
type Pet struct {
	ID      uint64 `json:"id"`
	Name    string `json:"name"`
	Species string `json:"species"`
	Breed   string `json:"breed"`
	// Age is in months
	Age       uint32    `json:"age"`
	Status    PetStatus `json:"status"`
	CreatedAt uint64    `json:"created_at"`
}

// PetPayload creates a Pet
type PetPayload struct {
	Name    string    `json:"name"`
	Species string    `json:"species"`
	Breed   string    `json:"breed"`
	Age     uint32    `json:"age"`
	Status  PetStatus `json:"status"`
}

// AdoptionRequest is an adopter asking to adopt a pet
type AdoptionRequest struct {
	ID        uint64        `json:"id"`
	AdopterID uint64        `json:"adopter_id"`
	PetID     uint64        `json:"pet_id"`
	Message   string        `json:"message"`
	Status    RequestStatus `json:"status"`
	CreatedAt uint64        `json:"created_at"`
}

// AdoptionRequestPayload creates an AdoptionRequest
type AdoptionRequestPayload struct {
	AdopterID uint64        `json:"adopter_id"`
	PetID     uint64        `json:"pet_id"`
	Message   string        `json:"message"`
	Status    RequestStatus `json:"status"`
}

// Donation is money given to the shelter. Anonymous donations
// have no donor and general donations have no pet.
type Donation struct {
	ID      uint64  `json:"id"`
	DonorID *uint64 `json:"donor_id,omitempty"`
	PetID   *uint64 `json:"pet_id,omitempty"`
	// Amount is in cents
	Amount    uint64 `json:"amount"`
	Message   string `json:"message"`
	CreatedAt uint64 `json:"created_at"`
}

// DonationPayload creates a Donation
type DonationPayload struct {
	DonorID *uint64 `json:"donor_id,omitempty"`
	PetID   *uint64 `json:"pet_id,omitempty"`
	Amount  uint64  `json:"amount"`
	Message string  `json:"message"`
}

// PetQuery selects the records that concern one pet
type PetQuery struct {
	PetID uint64 `json:"pet_id"`
}
