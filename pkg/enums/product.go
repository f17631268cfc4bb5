package enums

import "fmt"

// ProductCategory represents the canonical product categories carried in the catalog.
type ProductCategory string

const (
	ProductCategoryRawMaterial  ProductCategory = "raw_material"
	ProductCategoryFinishedGood ProductCategory = "finished_good"
	ProductCategoryPackaging    ProductCategory = "packaging"
	ProductCategoryConsumable   ProductCategory = "consumable"
	ProductCategoryHardware     ProductCategory = "hardware"
	ProductCategoryElectrical   ProductCategory = "electrical"
	ProductCategoryStationery   ProductCategory = "stationery"
	ProductCategoryOther        ProductCategory = "other"
)

var validProductCategories = []ProductCategory{
	ProductCategoryRawMaterial,
	ProductCategoryFinishedGood,
	ProductCategoryPackaging,
	ProductCategoryConsumable,
	ProductCategoryHardware,
	ProductCategoryElectrical,
	ProductCategoryStationery,
	ProductCategoryOther,
}

// String implements fmt.Stringer.
func (c ProductCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ProductCategory.
func (c ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseProductCategory converts raw input into a ProductCategory.
func ParseProductCategory(value string) (ProductCategory, error) {
	for _, candidate := range validProductCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}

// ProductUnit defines the available units of measure for pricing.
type ProductUnit string

const (
	ProductUnitPiece ProductUnit = "piece"
	ProductUnitKg    ProductUnit = "kg"
	ProductUnitGram  ProductUnit = "gram"
	ProductUnitLitre ProductUnit = "litre"
	ProductUnitMetre ProductUnit = "metre"
	ProductUnitBox   ProductUnit = "box"
	ProductUnitDozen ProductUnit = "dozen"
	ProductUnitSet   ProductUnit = "set"
)

var validProductUnits = []ProductUnit{
	ProductUnitPiece,
	ProductUnitKg,
	ProductUnitGram,
	ProductUnitLitre,
	ProductUnitMetre,
	ProductUnitBox,
	ProductUnitDozen,
	ProductUnitSet,
}

// String implements fmt.Stringer.
func (u ProductUnit) String() string {
	return string(u)
}

// IsValid reports whether the value matches a known ProductUnit.
func (u ProductUnit) IsValid() bool {
	for _, candidate := range validProductUnits {
		if candidate == u {
			return true
		}
	}
	return false
}

// ParseProductUnit converts raw input into a ProductUnit.
func ParseProductUnit(value string) (ProductUnit, error) {
	for _, candidate := range validProductUnits {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product unit %q", value)
}
