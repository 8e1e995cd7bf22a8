package model

// Category is one of the fixed menu sections.
type Category string

const (
	CategoryHamburguesas Category = "Hamburguesas"
	CategoryPerros       Category = "Perros"
	CategorySalchipapas  Category = "Salchipapas"
	CategoryChoripapas   Category = "Choripapas"
	CategoryPapasLocas   Category = "Papas Locas"
	CategorySandwiches   Category = "Sandwiches"
	CategoryAlternativas Category = "Alternativas"
	CategoryBebidas      Category = "Bebidas"
	CategoryAdicionales  Category = "Adicionales"
)

// Categories in menu display order.
var Categories = []Category{
	CategoryHamburguesas,
	CategoryPerros,
	CategorySalchipapas,
	CategoryChoripapas,
	CategoryPapasLocas,
	CategorySandwiches,
	CategoryAlternativas,
	CategoryBebidas,
	CategoryAdicionales,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// AcceptsComboDrink reports whether lines of this category may carry a combo drink.
func (c Category) AcceptsComboDrink() bool {
	return c != CategoryBebidas && c != CategoryAdicionales
}
