package repository

// ReferenceRepository agrupa las verificaciones de existencia de entidades de
// referencia. Los movimientos solo necesitan saber si el código existe; el CRUD
// de estas entidades es un colaborador externo.
type ReferenceRepository interface {
	SupplierExists(code string) (bool, error)
	CustomerExists(code string) (bool, error)
	ContractExists(code string) (bool, error)
	BillExists(code string) (bool, error)
	UserExists(id string) (bool, error)
}
