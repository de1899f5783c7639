package domain

// Category groups products in the catalog
type Category string

const (
	CategoryAgendas         Category = "agendas"
	CategoryAgendasDocentes Category = "agendas docentes"
	CategoryEspeciales      Category = "especiales"
	CategoryCuadernos       Category = "cuadernos"
	CategoryRecetarios      Category = "recetarios"
	CategoryLibretas        Category = "libretas"
)

// IsValid checks if the category is one of the catalog categories
func (c Category) IsValid() bool {
	switch c {
	case CategoryAgendas,
		CategoryAgendasDocentes,
		CategoryEspeciales,
		CategoryCuadernos,
		CategoryRecetarios,
		CategoryLibretas:
		return true
	default:
		return false
	}
}

// Size is a paper format
type Size string

const (
	SizeA5     Size = "A5"
	SizeA4     Size = "A4"
	SizeA45    Size = "A4.5"
	SizePocket Size = "Pocket"
)

func (s Size) IsValid() bool {
	switch s {
	case SizeA5, SizeA4, SizeA45, SizePocket:
		return true
	default:
		return false
	}
}

// Interior is the page layout inside a notebook or planner
type Interior string

const (
	InteriorSemanal       Interior = "semanal"
	InteriorDosPorHoja    Interior = "dos-por-hoja"
	InteriorUniversitaria Interior = "universitaria"
	InteriorDocente       Interior = "docente"
	InteriorPerpetua      Interior = "perpetua"
	InteriorRayado        Interior = "rayado"
	InteriorLiso          Interior = "liso"
	InteriorCuadriculado  Interior = "cuadriculado"
	InteriorRecetas       Interior = "recetas"
)

func (i Interior) IsValid() bool {
	switch i {
	case InteriorSemanal,
		InteriorDosPorHoja,
		InteriorUniversitaria,
		InteriorDocente,
		InteriorPerpetua,
		InteriorRayado,
		InteriorLiso,
		InteriorCuadriculado,
		InteriorRecetas:
		return true
	default:
		return false
	}
}

// Cover is the binding type
type Cover string

const (
	CoverDura   Cover = "dura"
	CoverBlanda Cover = "blanda"
)

func (c Cover) IsValid() bool {
	return c == CoverDura || c == CoverBlanda
}

// DeliveryMethod is how the buyer wants to receive the order
type DeliveryMethod string

const (
	DeliveryPickup   DeliveryMethod = "retiro"
	DeliveryShipping DeliveryMethod = "envio"
)

// IsValid checks if the delivery method is known
func (d DeliveryMethod) IsValid() bool {
	return d == DeliveryPickup || d == DeliveryShipping
}

// HandoffState represents the progress of a checkout hand-off
type HandoffState string

const (
	HandoffIdle       HandoffState = "IDLE"
	HandoffFormatting HandoffState = "FORMATTING"
	HandoffPending    HandoffState = "HANDOFF_PENDING"
	HandoffCleared    HandoffState = "CLEARED"
	HandoffFailed     HandoffState = "FAILED"
)

// CanTransitionTo checks if a state transition is valid
func (s HandoffState) CanTransitionTo(next HandoffState) bool {
	switch s {
	case HandoffIdle:
		return next == HandoffFormatting
	case HandoffFormatting:
		return next == HandoffPending || next == HandoffFailed
	case HandoffPending:
		return next == HandoffCleared || next == HandoffFailed
	case HandoffFailed:
		return next == HandoffFormatting // retry
	case HandoffCleared:
		return false
	default:
		return false
	}
}
