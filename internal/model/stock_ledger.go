package model

// stock_ledger.go
// Primitives over a product's ordered location list. They assume pre-validated
// input: callers (venta / traspaso services) check total availability before
// debiting, so no location ever goes negative here.

// TotalStock returns the sum of quantities across all locations.
// An empty list behaves as zero stock.
func TotalStock(ubicaciones []UbicacionStock) int {
	total := 0
	for _, u := range ubicaciones {
		total += u.Cantidad
	}
	return total
}

// CreditStock adds cantidad to the location named nombre, appending a new
// entry at the end of the list when the name is not present.
func CreditStock(ubicaciones []UbicacionStock, nombre string, cantidad int) []UbicacionStock {
	for i := range ubicaciones {
		if ubicaciones[i].Nombre == nombre {
			ubicaciones[i].Cantidad += cantidad
			return ubicaciones
		}
	}
	pos := 0
	if n := len(ubicaciones); n > 0 {
		pos = ubicaciones[n-1].Posicion + 1
	}
	return append(ubicaciones, UbicacionStock{Nombre: nombre, Cantidad: cantidad, Posicion: pos})
}

// DebitStock consumes total pieces walking the locations in list order,
// taking min(remaining, location quantity) from each until nothing remains.
// The caller must have verified TotalStock >= total.
func DebitStock(ubicaciones []UbicacionStock, total int) []UbicacionStock {
	restante := total
	for i := range ubicaciones {
		if restante == 0 {
			break
		}
		toma := ubicaciones[i].Cantidad
		if toma > restante {
			toma = restante
		}
		ubicaciones[i].Cantidad -= toma
		restante -= toma
	}
	return ubicaciones
}

// PruneStock removes entries whose quantity is exactly 0.
func PruneStock(ubicaciones []UbicacionStock) []UbicacionStock {
	out := ubicaciones[:0]
	for _, u := range ubicaciones {
		if u.Cantidad != 0 {
			out = append(out, u)
		}
	}
	return out
}
