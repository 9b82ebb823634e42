package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// DietsHeader is the header row of the All_Diets dataset
const DietsHeader = "Diet_type,Recipe_name,Cuisine_type,Protein(g),Carbs(g),Fat(g),Extraction_day"

// SampleDietsCSV is a small dataset covering three diet types, a missing
// protein value and a zero-carbs row.
const SampleDietsCSV = DietsHeader + `
paleo,Bone Broth,american,30,10,20,2022-10-16
vegan,Lentil Soup,indian,10,20,5,2022-10-16
paleo,Steak Salad,american,50,0,25,2022-10-16
keto,Egg Cups,french,20,4,30,2022-10-16
vegan,Tofu Bowl,asian,30,40,15,2022-10-16
keto,Salmon Plate,,,2,40,2022-10-16
`

// CSV joins rows below the dataset header
func CSV(rows ...string) string {
	return DietsHeader + "\n" + strings.Join(rows, "\n") + "\n"
}

// WriteCSV writes content to name inside a temp dir and returns the path
func WriteCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}
