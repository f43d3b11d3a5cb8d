package catalog

import "time"

func strptr(s string) *string { return &s }

// SeedDemo fills the repository with the demo catalog. Two dog-food entries
// intentionally share barcode 7798123456789 (different bag sizes from the same
// supplier) so the ambiguous-scan flow is reachable out of the box.
func SeedDemo(repo *MemoryRepository) error {
	now := time.Now()
	products := []Product{
		{Name: "Premium Dog Food 15kg", Category: CategoryFood, Stock: 42, MinStock: 10, Price: 58.90, Supplier: strptr("NutriPet"), Barcode: "7798123456789", BatchNumber: strptr("L2408-A"), LastUpdated: now},
		{Name: "Premium Dog Food 3kg", Category: CategoryFood, Stock: 77, MinStock: 20, Price: 16.50, Supplier: strptr("NutriPet"), Barcode: "7798123456789", BatchNumber: strptr("L2408-B"), LastUpdated: now},
		{Name: "Cat Litter 10L", Category: CategoryAccessories, Stock: 31, MinStock: 8, Price: 12.00, Supplier: strptr("CleanPaws"), Barcode: "7791234500011", LastUpdated: now},
		{Name: "Flea & Tick Pipette M", Category: CategoryHealthcare, Stock: 6, MinStock: 12, Price: 9.75, Supplier: strptr("VetLab"), Barcode: "7790000112233", BatchNumber: strptr("FT-0625"), LastUpdated: now},
		{Name: "Rope Toy Large", Category: CategoryToys, Stock: 54, MinStock: 5, Price: 6.40, Barcode: "7795556677889", LastUpdated: now},
		{Name: "Deshedding Brush", Category: CategoryGrooming, Stock: 18, MinStock: 4, Price: 14.20, Supplier: strptr("GroomCo"), Barcode: "7793332211000", LastUpdated: now},
		{Name: "Kitten Milk Replacer 400g", Category: CategoryFood, Stock: 9, MinStock: 10, Price: 21.30, Supplier: strptr("VetLab"), Barcode: "7798887766554", BatchNumber: strptr("KM-0125"), LastUpdated: now},
		{Name: "Adjustable Harness S", Category: CategoryAccessories, Stock: 25, MinStock: 6, Price: 11.80, Barcode: "7794445556667", LastUpdated: now},
	}
	for _, p := range products {
		if _, err := repo.Add(p); err != nil {
			return err
		}
	}
	return nil
}
