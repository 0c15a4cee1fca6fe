package repository

// KeyValueStore define el puerto de persistencia de un almacén clave-valor durable.
// Cada colección (clientes, notas, configuración) vive en su propio almacén.
// Set no retorna hasta que el valor quedó escrito en disco.
type KeyValueStore interface {
	// Get decodifica el valor de key en dst. found es false si la clave no existe.
	Get(key string, dst any) (found bool, err error)
	Set(key string, value any) error
	Close() error
}
