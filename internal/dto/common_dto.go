package dto

// MutacionResponse answers every successful create/update/delete.
type MutacionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      uint   `json:"id,omitempty"`
}

func OK(message string, id uint) MutacionResponse {
	return MutacionResponse{Success: true, Message: message, ID: id}
}

// Opcion is an {id, nombre} pair for select inputs.
type Opcion struct {
	ID     uint   `json:"id"`
	Nombre string `json:"nombre"`
}
