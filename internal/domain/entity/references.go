package entity

// Entidades de referencia: solo se consultan para validar existencia antes de
// registrar movimientos. Su CRUD completo es un colaborador externo.

type Supplier struct {
	Code string
	Name string
}

type Customer struct {
	Code string
	Name string
}

type Contract struct {
	Code string
}

type Bill struct {
	Code string
}

// User responsable de salidas y conteos.
type User struct {
	ID   string
	Name string
}
