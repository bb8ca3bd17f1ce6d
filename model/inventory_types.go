package model

// ItemStatus is the lifecycle state of an inventory ledger row.
// VOID rows are the negated clones produced by voiding; VOIDED rows are the
// originals they cancel out; NON_VOIDED rows are live counts.
type ItemStatus int

const (
	StatusVoid      ItemStatus = 0
	StatusVoided    ItemStatus = 1
	StatusNonVoided ItemStatus = 2

	StatusUnknown ItemStatus = -1
)

// StatusFromValue maps a stored status integer to its enum value. Values
// outside the known range map to StatusUnknown instead of failing, so a
// corrupted row can never break the export.
func StatusFromValue(v int) ItemStatus {
	switch ItemStatus(v) {
	case StatusVoid, StatusVoided, StatusNonVoided:
		return ItemStatus(v)
	default:
		return StatusUnknown
	}
}

func (s ItemStatus) String() string {
	switch s {
	case StatusVoid:
		return "VOID"
	case StatusVoided:
		return "VOIDED"
	case StatusNonVoided:
		return "NON_VOIDED"
	default:
		return "UNKNOWN"
	}
}

// InventoryItem is one append-only ledger row. ExpDate, DamageCode and Note
// are optional annotations; DamageCode references damage_info and must stay
// NULL (not empty) when unset.
type InventoryItem struct {
	ID              int64   `db:"id" json:"id"`
	DeviceNumber    string  `db:"device_number" json:"deviceNumber"`
	StoreCode       string  `db:"store_code" json:"storeCode"`
	InventoryListID int64   `db:"inventory_list_id" json:"inventoryListId"`
	Ident           string  `db:"ident" json:"ident"`
	Quantity        float64 `db:"quantity" json:"quantity"`
	ExpDate         *string `db:"exp_date" json:"expDate,omitempty"`
	DamageCode      *string `db:"damage_code" json:"damageCode,omitempty"`
	Note            *string `db:"note" json:"note,omitempty"`
	Status          int     `db:"status" json:"status"`
	IndexInList     int     `db:"index_in_list" json:"indexInList"`
}

// InventoryItemDetail is a ledger row joined with the description of its
// damage code, for the edit screen.
type InventoryItemDetail struct {
	InventoryItem
	DamageDesc *string `db:"damage_desc" json:"damageDesc,omitempty"`
}

type InventoryList struct {
	ID       int64  `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Selected int    `db:"selected" json:"selected"`
}

// InventoryListWithCount carries the number of ledger rows recorded against
// the list.
type InventoryListWithCount struct {
	InventoryList
	ItemCount int `db:"item_count" json:"itemCount"`
}

// ProductPreviewItem is the denormalized ledger row shown while scanning:
// catalog display fields plus the ledger quantity and status.
type ProductPreviewItem struct {
	ProductName  string  `db:"product_name" json:"productName"`
	ProductPrice float64 `db:"product_price" json:"productPrice"`
	MeasureUnit  string  `db:"measure_unit" json:"measureUnit"`
	InventoryID  int64   `db:"inventory_id" json:"inventoryId"`
	Ident        string  `db:"ident" json:"ident"`
	Barcode      string  `db:"barcode" json:"barcode"`
	Quantity     float64 `db:"quantity" json:"quantity"`
	Status       int     `db:"status" json:"status"`
	IndexInList  int     `db:"index_in_list" json:"indexInList"`
	HasExtraInfo bool    `db:"has_extra_info" json:"hasExtraInfo"`
}

// PreviewFromMaster builds a catalog-only preview for an item that has no
// ledger row yet. InventoryID -1 marks the row as not persisted.
func PreviewFromMaster(m MasterItem) ProductPreviewItem {
	return ProductPreviewItem{
		ProductName:  m.Name,
		ProductPrice: m.Price,
		MeasureUnit:  m.UnitOfMeasure,
		InventoryID:  -1,
		Ident:        m.Ident,
		Barcode:      m.Barcode,
	}
}

// InventoryExportItem is one flattened row of the export file. Status is the
// string form of the stored status; ListName comes from a left join and is
// null when the list row is gone.
type InventoryExportItem struct {
	DeviceNumber    string  `db:"device_number" json:"deviceNumber"`
	StoreCode       string  `db:"store_code" json:"storeCode"`
	InventoryListID int64   `db:"inventory_list_id" json:"inventoryListId"`
	ListName        *string `db:"list_name" json:"listName"`
	Ident           string  `db:"ident" json:"ident"`
	Quantity        float64 `db:"quantity" json:"quantity"`
	ExpDate         *string `db:"exp_date" json:"expDate"`
	DamageCode      *string `db:"damage_code" json:"damageCode"`
	DamageDesc      *string `db:"damage_desc" json:"damageDesc"`
	Note            *string `db:"note" json:"note"`
	RawStatus       int     `db:"status" json:"-"`
	Status          string  `db:"-" json:"status"`
	IndexInList     int     `db:"index_in_list" json:"indexInList"`
}
