package models

// Product продукт справочника отчётов.
type Product struct {
	ID      int    `db:"id" json:"id"`
	Name    string `db:"name" json:"name"`
	Group   string `db:"product_group" json:"group"`
	Display bool   `db:"display" json:"display"`
}

// Company производитель справочника отчётов.
type Company struct {
	ID        int    `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Location  string `db:"location" json:"location"`
	CountryID int    `db:"country_id" json:"countryId"`
	Display   bool   `db:"display" json:"display"`
}

// Country страна.
type Country struct {
	ID   int    `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}
