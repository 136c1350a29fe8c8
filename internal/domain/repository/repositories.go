package repository

// Repositories agrupa los puertos atados a una misma conexión o transacción.
// Cada backend (postgres, sqlite) construye uno sobre el pool y otro por transacción.
type Repositories struct {
	Users      UserRepository
	Pharmacies PharmacyRepository
	Medicines  MedicineRepository
	Inventory  InventoryRepository
}
