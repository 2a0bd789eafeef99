package main

import "github.com/glYohanny/Gucci/internal/model"

// regionesChile returns the sixteen regions with a handful of comunas each,
// enough for the address selects of the employee form.
func regionesChile() []model.Region {
	datos := []struct {
		nombre  string
		comunas []string
	}{
		{"Arica y Parinacota", []string{"Arica", "Camarones", "Putre", "General Lagos"}},
		{"Tarapacá", []string{"Iquique", "Alto Hospicio", "Pozo Almonte", "Pica"}},
		{"Antofagasta", []string{"Antofagasta", "Calama", "Tocopilla", "Mejillones", "Taltal"}},
		{"Atacama", []string{"Copiapó", "Caldera", "Vallenar", "Chañaral"}},
		{"Coquimbo", []string{"La Serena", "Coquimbo", "Ovalle", "Illapel", "Vicuña"}},
		{"Valparaíso", []string{"Valparaíso", "Viña del Mar", "Quilpué", "Villa Alemana", "San Antonio", "Los Andes"}},
		{"Metropolitana de Santiago", []string{"Santiago", "Providencia", "Las Condes", "Ñuñoa", "Maipú", "Puente Alto", "La Florida", "Vitacura"}},
		{"Libertador General Bernardo O'Higgins", []string{"Rancagua", "San Fernando", "Pichilemu", "Rengo"}},
		{"Maule", []string{"Talca", "Curicó", "Linares", "Constitución", "Cauquenes"}},
		{"Ñuble", []string{"Chillán", "Chillán Viejo", "San Carlos", "Bulnes"}},
		{"Biobío", []string{"Concepción", "Talcahuano", "Los Ángeles", "Coronel", "San Pedro de la Paz"}},
		{"La Araucanía", []string{"Temuco", "Padre Las Casas", "Villarrica", "Pucón", "Angol"}},
		{"Los Ríos", []string{"Valdivia", "La Unión", "Río Bueno", "Panguipulli"}},
		{"Los Lagos", []string{"Puerto Montt", "Osorno", "Castro", "Puerto Varas", "Ancud"}},
		{"Aysén del General Carlos Ibáñez del Campo", []string{"Coyhaique", "Aysén", "Chile Chico", "Cochrane"}},
		{"Magallanes y de la Antártica Chilena", []string{"Punta Arenas", "Puerto Natales", "Porvenir", "Cabo de Hornos"}},
	}

	regiones := make([]model.Region, 0, len(datos))
	for _, d := range datos {
		r := model.Region{Nombre: d.nombre}
		for _, c := range d.comunas {
			r.Comunas = append(r.Comunas, model.Comuna{Nombre: c})
		}
		regiones = append(regiones, r)
	}
	return regiones
}
