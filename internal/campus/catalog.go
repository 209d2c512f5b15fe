package campus

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

var (
	ErrUnknownBuilding = errors.New("unknown building")
	ErrUnknownFloor    = errors.New("floor does not exist in building")
	ErrUnknownRoom     = errors.New("room does not belong to building floor")
)

// Building is one campus building with its bookable rooms per floor.
type Building struct {
	Code   string           `yaml:"code" json:"code"`
	Floors map[int][]string `yaml:"floors" json:"floors"`
}

type catalogFile struct {
	Buildings []Building `yaml:"buildings"`
}

// Catalog is the closed set of buildings, floors and rooms events may book.
type Catalog struct {
	buildings []Building
	byCode    map[string]Building
}

// Default returns the embedded campus catalog.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("campus: embedded catalog is invalid: %v", err))
	}
	return c
}

// Load reads a catalog YAML file. An empty path yields the embedded default.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read campus catalog: %w", err)
	}
	return Parse(b)
}

// Parse decodes catalog YAML and checks room codes are unique.
func Parse(b []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("decode campus catalog: %w", err)
	}
	if len(f.Buildings) == 0 {
		return nil, errors.New("campus catalog has no buildings")
	}

	c := &Catalog{byCode: make(map[string]Building, len(f.Buildings))}
	seen := make(map[string]string)
	for _, b := range f.Buildings {
		code := strings.ToUpper(strings.TrimSpace(b.Code))
		if code == "" {
			return nil, errors.New("campus catalog: building without code")
		}
		if _, dup := c.byCode[code]; dup {
			return nil, fmt.Errorf("campus catalog: duplicate building %s", code)
		}
		b.Code = code
		for floor, rooms := range b.Floors {
			for _, room := range rooms {
				if prev, dup := seen[room]; dup {
					return nil, fmt.Errorf("campus catalog: room %s listed twice (%s)", room, prev)
				}
				seen[room] = fmt.Sprintf("%s/%d", code, floor)
			}
		}
		c.byCode[code] = b
		c.buildings = append(c.buildings, b)
	}
	return c, nil
}

// Buildings lists buildings in catalog order.
func (c *Catalog) Buildings() []Building {
	out := make([]Building, len(c.buildings))
	copy(out, c.buildings)
	return out
}

// HasBuilding reports whether code is a known building.
func (c *Catalog) HasBuilding(code string) bool {
	_, ok := c.byCode[code]
	return ok
}

// Floors returns the floor numbers of a building in ascending order.
func (c *Catalog) Floors(building string) []int {
	b, ok := c.byCode[building]
	if !ok {
		return nil
	}
	floors := make([]int, 0, len(b.Floors))
	for f := range b.Floors {
		floors = append(floors, f)
	}
	sort.Ints(floors)
	return floors
}

// Rooms returns the rooms on one floor of a building.
func (c *Catalog) Rooms(building string, floor int) []string {
	b, ok := c.byCode[building]
	if !ok {
		return nil
	}
	return append([]string(nil), b.Floors[floor]...)
}

// Validate checks the (building, floor, room) triple against the catalog.
func (c *Catalog) Validate(building string, floor int, room string) error {
	b, ok := c.byCode[building]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownBuilding, building)
	}
	rooms, ok := b.Floors[floor]
	if !ok {
		return fmt.Errorf("%w: %s floor %d", ErrUnknownFloor, building, floor)
	}
	for _, r := range rooms {
		if r == room {
			return nil
		}
	}
	return fmt.Errorf("%w: %q not on %s floor %d", ErrUnknownRoom, room, building, floor)
}
