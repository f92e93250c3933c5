package importer

import (
	"strings"
	"testing"
)

func TestImportResolvesHeaderAliases(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "Canonical headers",
			input: "Keyword,Position,Search Volume\nrunning shoes,5,1000\n",
		},
		{
			name:  "Tool-specific spellings",
			input: "Query,Rank,Monthly Searches\nrunning shoes,5,1000\n",
		},
		{
			name:  "Mixed case and padding",
			input: " KEYWORD , Ranking , SV \nrunning shoes,5,1000\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Import(strings.NewReader(tt.input), ',')
			if err != nil {
				t.Fatalf("Import() error: %v", err)
			}
			if len(result.Records) != 1 {
				t.Fatalf("got %d records, want 1", len(result.Records))
			}

			record := result.Records[0]
			if record.Text != "running shoes" || record.Position != 5 || record.SearchVolume != 1000 {
				t.Errorf("parsed record = %+v", record)
			}
		})
	}
}

func TestImportMissingRequiredColumn(t *testing.T) {
	input := "Keyword,Search Volume\nrunning shoes,1000\n"

	if _, err := Import(strings.NewReader(input), ','); err == nil {
		t.Fatal("expected an error for a header without a position column")
	}
}

// Invalid rows shrink the output count but never produce an error.
func TestImportDropsInvalidRowsSilently(t *testing.T) {
	input := strings.Join([]string{
		"Keyword,Position,Search Volume",
		"valid keyword,5,1000",
		",3,500",             // empty keyword
		"zero position,0,10", // position not > 0
		"zero volume,4,0",    // volume not > 0
		"bad position,abc,10",
		"another valid,12,40",
	}, "\n")

	result, err := Import(strings.NewReader(input), ',')
	if err != nil {
		t.Fatalf("Import() error: %v", err)
	}

	if len(result.Records) != 2 {
		t.Errorf("got %d records, want 2", len(result.Records))
	}
	if result.RowsRead != 6 {
		t.Errorf("RowsRead = %d, want 6", result.RowsRead)
	}
	if result.RowsDropped != 4 {
		t.Errorf("RowsDropped = %d, want 4", result.RowsDropped)
	}
}

func TestImportOptionalColumns(t *testing.T) {
	input := strings.Join([]string{
		"Keyword,Position,Search Volume,Traffic,Keyword Difficulty,SERP Features,Intent,Country,Device",
		`running shoes,5,1000,123.4,45,Featured Snippet; People Also Ask,Commercial,us,Mobile`,
		"bare keyword,8,200,,,,,,",
	}, "\n")

	result, err := Import(strings.NewReader(input), ',')
	if err != nil {
		t.Fatalf("Import() error: %v", err)
	}
	if len(result.Records) != 2 {
		t.Fatalf("got %d records, want 2", len(result.Records))
	}

	full := result.Records[0]
	if full.ObservedTraffic == nil || *full.ObservedTraffic != 123.4 {
		t.Errorf("ObservedTraffic = %v, want 123.4", full.ObservedTraffic)
	}
	if full.Difficulty == nil || *full.Difficulty != 45 {
		t.Errorf("Difficulty = %v, want 45", full.Difficulty)
	}
	if len(full.SerpFeatures) != 2 || full.SerpFeatures[0] != "featured snippet" {
		t.Errorf("SerpFeatures = %v", full.SerpFeatures)
	}
	if full.Intent != "commercial" || full.Country != "US" || full.Device != "mobile" {
		t.Errorf("categorical fields = %q %q %q", full.Intent, full.Country, full.Device)
	}

	bare := result.Records[1]
	if bare.ObservedTraffic != nil || bare.Difficulty != nil || bare.SerpFeatures != nil {
		t.Errorf("empty optional cells must stay unset, got %+v", bare)
	}
}

func TestImportThousandsSeparators(t *testing.T) {
	input := "Keyword,Position,Search Volume\nbig keyword,3,\"12,500\"\n"

	result, err := Import(strings.NewReader(input), ',')
	if err != nil {
		t.Fatalf("Import() error: %v", err)
	}
	if len(result.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(result.Records))
	}
	if result.Records[0].SearchVolume != 12500 {
		t.Errorf("SearchVolume = %d, want 12500", result.Records[0].SearchVolume)
	}
}

func TestImportTabSeparated(t *testing.T) {
	input := "Keyword\tPosition\tSearch Volume\nrunning shoes\t5\t1000\n"

	result, err := Import(strings.NewReader(input), '\t')
	if err != nil {
		t.Fatalf("Import() error: %v", err)
	}
	if len(result.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(result.Records))
	}
}

func TestImportEmptySource(t *testing.T) {
	if _, err := Import(strings.NewReader(""), ','); err == nil {
		t.Fatal("expected an error for an empty source")
	}
}
