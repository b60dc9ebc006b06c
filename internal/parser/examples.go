package parser

// Canonical example inputs for each accepted format, served by the API so
// callers can see the expected shape.

const SimpleExample = `Customer: Estoy muy molesto con el servicio de mi tarjeta
Agent: Entiendo su frustración, permítame ayudarle
Customer: Mi tarjeta no funciona desde hace días
Agent: Voy a revisar su cuenta inmediatamente
Customer: Gracias, espero que puedan solucionarlo
Agent: He reactivado su tarjeta, ya debería funcionar
Customer: Perfecto, muchas gracias por la ayuda rápida`

const TimestampedExample = `[00:30] Customer: Estoy muy molesto con el servicio
[01:00] Agent: Entiendo su frustración, vamos a solucionarlo
[01:30] Customer: Mi tarjeta no funciona desde hace días
[02:00] Agent: Voy a revisar su cuenta ahora mismo
[02:30] Customer: Gracias por la ayuda
[03:00] Agent: He reactivado su tarjeta correctamente
[03:30] Customer: Perfecto, muchas gracias`

const JSONExample = `[
  {"speaker": "Customer", "text": "Estoy muy molesto con el servicio", "timestamp": "00:30"},
  {"speaker": "Agent", "text": "Entiendo su frustración", "timestamp": "01:00"},
  {"speaker": "Customer", "text": "Mi tarjeta no funciona", "timestamp": "01:30"},
  {"speaker": "Agent", "text": "Voy a revisar su cuenta", "timestamp": "02:00"},
  {"speaker": "Customer", "text": "Gracias por la ayuda", "timestamp": "02:30"},
  {"speaker": "Agent", "text": "He reactivado su tarjeta", "timestamp": "03:00"},
  {"speaker": "Customer", "text": "Perfecto, muchas gracias", "timestamp": "03:30"}
]`

// Example returns the sample input for a format.
func Example(format Format) string {
	switch format {
	case FormatTimestamped:
		return TimestampedExample
	case FormatJSON:
		return JSONExample
	default:
		return SimpleExample
	}
}
