package models

// Course is the catalog record returned by GET /course.
type Course struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ModuleCount int     `json:"module_count"`
}

// Module is a single course module. Public modules are visible without
// enrollment and served by GET /course/modules/public.
type Module struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Order  int    `json:"order"`
	Public bool   `json:"is_public"`
}
