package academico

type Curso struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
}

type Grado struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
}

type Seccion struct {
	ID      int    `json:"id"`
	Nombre  string `json:"nombre"`
	GradoID int    `json:"grado_id"`
}

type Periodo struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
	Activo bool   `json:"activo"`
}

// Clase pairs a Curso with a Seccion for a Periodo: one teaching instance.
type Clase struct {
	ID        int `json:"id"`
	CursoID   int `json:"curso_id"`
	SeccionID int `json:"seccion_id"`
	PeriodoID int `json:"periodo_id"`
	DocenteID int `json:"docente_id,omitempty"`
}
