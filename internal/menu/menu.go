package menu

// Item is a purchasable catalog entry
type Item struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Items is the static menu shown by the order form. It is never mutated at
// runtime.
var Items = []Item{
	{ID: 1, Name: "Pizza Margherita", Price: 12.99},
	{ID: 2, Name: "Chicken Burger", Price: 9.99},
	{ID: 3, Name: "Caesar Salad", Price: 8.50},
	{ID: 4, Name: "Pasta Carbonara", Price: 11.99},
	{ID: 5, Name: "Fish & Chips", Price: 13.50},
	{ID: 6, Name: "Chocolate Cake", Price: 6.99},
}

// ByID returns the catalog item with the given id
func ByID(id int64) (Item, bool) {
	for _, it := range Items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}
