package importer

// Field mapea una columna de la hoja a un campo del movimiento. La coincidencia
// de encabezados no distingue mayúsculas ni espacios alrededor.
type Field struct {
	Column   string // encabezado esperado en la hoja
	Target   string // campo destino del movimiento
	Required bool
}

// Schema describe la estructura esperada de un archivo de importación.
type Schema struct {
	Sheet  string // nombre de la hoja; vacío = primera hoja del libro
	Fields []Field
}

// Campos destino reconocidos por el importador de entradas.
const (
	targetCode      = "code"
	targetProduct   = "product_code"
	targetQuantity  = "quantity"
	targetDate      = "date"
	targetWarehouse = "warehouse_code"
	targetSupplier  = "supplier_code"
	targetBill      = "bill_code"
	targetContract  = "contract_code"
)

// StockInSchema devuelve el esquema de importación masiva de entradas.
func StockInSchema() Schema {
	return Schema{
		Fields: []Field{
			{Column: "Codigo", Target: targetCode, Required: true},
			{Column: "Producto", Target: targetProduct, Required: true},
			{Column: "Cantidad", Target: targetQuantity, Required: true},
			{Column: "Fecha", Target: targetDate, Required: true},
			{Column: "Bodega", Target: targetWarehouse},
			{Column: "Proveedor", Target: targetSupplier},
			{Column: "Factura", Target: targetBill},
			{Column: "Contrato", Target: targetContract},
		},
	}
}
