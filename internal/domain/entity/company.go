package entity

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// Company tenant: frontera de aislamiento de datos.
type Company struct {
	ID        string
	Name      string // nombre visible tal como se registró por primera vez
	NameKey   string // NormalizeCompanyName(Name), único
	CreatedAt time.Time
}

// NormalizeCompanyName clave de comparación de nombres de empresa:
// case folding Unicode y espacios colapsados.
func NormalizeCompanyName(name string) string {
	return cases.Fold().String(strings.Join(strings.Fields(name), " "))
}
