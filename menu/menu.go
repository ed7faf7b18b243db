/*
Package menu serves the canteen's menu of the day.

PURPOSE:
  Holds the weekly menu shown on the employee-facing page. Loaded once
  at startup from a TOML file; falls back to a built-in menu when the
  file is absent so the public endpoint never errors.

FILE FORMAT (TOML, one table per weekday):

  [segunda]
  prato = "Feijoada completa"
  preco = "14.50"

  Recognized tables: domingo, segunda, terca, quarta, quinta, sexta,
  sabado. Prices are decimal strings (two-decimal currency values;
  float rounding is not acceptable here).
*/
package menu

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"
)

// Item is one day's dish and price.
type Item struct {
	Dish  string
	Price decimal.Decimal
}

// Menu maps weekdays to their dish of the day.
type Menu struct {
	items map[time.Weekday]Item
}

// tomlDay mirrors one weekday table in the menu file.
type tomlDay struct {
	Prato string `toml:"prato"`
	Preco string `toml:"preco"`
}

var weekdayKeys = map[string]time.Weekday{
	"domingo": time.Sunday,
	"segunda": time.Monday,
	"terca":   time.Tuesday,
	"quarta":  time.Wednesday,
	"quinta":  time.Thursday,
	"sexta":   time.Friday,
	"sabado":  time.Saturday,
}

// weekdayNames are the user-facing Portuguese day names.
var weekdayNames = map[time.Weekday]string{
	time.Sunday:    "Domingo",
	time.Monday:    "Segunda-feira",
	time.Tuesday:   "Terça-feira",
	time.Wednesday: "Quarta-feira",
	time.Thursday:  "Quinta-feira",
	time.Friday:    "Sexta-feira",
	time.Saturday:  "Sábado",
}

// Load reads a weekly menu from the given TOML file. An empty path or a
// missing file yields the built-in default menu.
func Load(path string) (*Menu, error) {
	if path == "" {
		return Default(), nil
	}

	raw := make(map[string]tomlDay)
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to load menu file: %w", err)
	}

	items := make(map[time.Weekday]Item)
	for key, day := range raw {
		weekday, ok := weekdayKeys[key]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q in menu file", key)
		}
		price, err := decimal.NewFromString(day.Preco)
		if err != nil {
			return nil, fmt.Errorf("invalid price %q for %s: %w", day.Preco, key, err)
		}
		items[weekday] = Item{Dish: day.Prato, Price: price}
	}

	return &Menu{items: items}, nil
}

// Default returns the built-in weekly menu.
func Default() *Menu {
	price := decimal.RequireFromString("12.00")
	return &Menu{items: map[time.Weekday]Item{
		time.Monday:    {Dish: "Frango grelhado com arroz e feijão", Price: price},
		time.Tuesday:   {Dish: "Carne de panela com purê", Price: price},
		time.Wednesday: {Dish: "Feijoada completa", Price: decimal.RequireFromString("14.50")},
		time.Thursday:  {Dish: "Peixe assado com legumes", Price: price},
		time.Friday:    {Dish: "Strogonoff de frango", Price: price},
	}}
}

// ForDay returns the item for the given weekday.
func (m *Menu) ForDay(day time.Weekday) (Item, bool) {
	item, ok := m.items[day]
	return item, ok
}

// DayName returns the Portuguese name for a weekday.
func DayName(day time.Weekday) string {
	return weekdayNames[day]
}
