package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ziadkadry99/techtree/internal/availability"
	"github.com/ziadkadry99/techtree/internal/graph"
	"github.com/ziadkadry99/techtree/internal/metadata"
)

// Data is the locale independent content of data.json.
type Data struct {
	Tables          metadata.Tables              `json:"data"`
	TechTrees       map[string]*availability.Set `json:"techtrees"`
	CivNames        map[string]metadata.StringID `json:"civ_names"`
	CivHelpTexts    map[string]metadata.StringID `json:"civ_helptexts"`
	TechTreeStrings map[string]metadata.StringID `json:"tech_tree_strings"`
	AgeNames        map[string]metadata.StringID `json:"age_names"`

	// civOrder keeps civ_names in file order; badges follow it.
	civOrder []string
}

func (d *Data) UnmarshalJSON(b []byte) error {
	type plain Data
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	var raw struct {
		CivNames json.RawMessage `json:"civ_names"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	order, err := objectKeys(raw.CivNames)
	if err != nil {
		return fmt.Errorf("decoding civ_names: %w", err)
	}
	*d = Data(p)
	d.civOrder = order
	return nil
}

// objectKeys returns the keys of a JSON object in document order.
func objectKeys(raw json.RawMessage) ([]string, error) {
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		keys = append(keys, tok.(string))
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

// CivOrder returns the faction ids in data file order.
func (d *Data) CivOrder() []string {
	return append([]string(nil), d.civOrder...)
}

// Tree is the layout provider's output: placed nodes, prerequisite edges and
// the canvas size.
type Tree struct {
	Width       float64      `json:"width"`
	Height      float64      `json:"height"`
	Nodes       []graph.Node `json:"nodes"`
	Connections []graph.Edge `json:"connections"`
}

func readJSON(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// LoadData reads data.json.
func LoadData(path string) (*Data, error) {
	var d Data
	if err := readJSON(path, &d); err != nil {
		return nil, fmt.Errorf("loading data: %w", err)
	}
	return &d, nil
}

// LoadTree reads tree.json.
func LoadTree(path string) (*Tree, error) {
	var t Tree
	if err := readJSON(path, &t); err != nil {
		return nil, fmt.Errorf("loading tree: %w", err)
	}
	for _, n := range t.Nodes {
		if !n.Category.Valid() {
			return nil, fmt.Errorf("loading tree: node %s has unknown type %q", n.ID, n.Category)
		}
	}
	return &t, nil
}

// LoadStrings reads a locale's strings.json.
func LoadStrings(path string) (metadata.Strings, error) {
	var s metadata.Strings
	if err := readJSON(path, &s); err != nil {
		return nil, fmt.Errorf("loading strings: %w", err)
	}
	return s, nil
}
