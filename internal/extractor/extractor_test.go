package extractor

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	dirfSpaced   = "12345678901234 1 ACME PAGADORA          20230415 4085 000000010000000 000000000050000"
	dirfUnspaced = "98765432000199 2 BETA SERVICOS S/A  202304201708000000000250000000000000003750"
)

func TestParseDIRF(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantCount int
	}{
		{name: "empty input", text: "", wantCount: 0},
		{name: "only garbage", text: "DIRF|2023|HEADER\nRESPO|foo\n", wantCount: 0},
		{name: "one spaced line", text: dirfSpaced, wantCount: 1},
		{name: "spaced and unspaced with noise", text: "HEADER\r\n" + dirfSpaced + "\r\n\r\nfooter\r\n" + dirfUnspaced + "\r\n", wantCount: 2},
		{name: "name separated by a single space is skipped", text: "12345678901234 1 ACME 20230415 4085 000000010000000 000000000050000", wantCount: 0},
		{name: "invalid calendar date is skipped", text: "12345678901234 1 ACME PAGADORA  20231345 4085 000000010000000 000000000050000", wantCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDIRF(tt.text)
			assert.Len(t, got, tt.wantCount)
		})
	}
}

func TestParseDIRF_Fields(t *testing.T) {
	got := ParseDIRF("header\n" + dirfSpaced + "\n" + dirfUnspaced)
	require.Len(t, got, 2)

	first := got[0]
	assert.Equal(t, "12345678901234", first.PayerID)
	assert.Equal(t, "1", first.RecordType)
	assert.Equal(t, "ACME PAGADORA", first.PayerName)
	assert.Equal(t, time.Date(2023, 4, 15, 0, 0, 0, 0, time.UTC), first.DeliveryDate)
	assert.Equal(t, 4085, first.IncomeCode)
	assert.Equal(t, "100000.00", first.GrossAmount.StringFixed(2))
	assert.Equal(t, "500.00", first.Withheld.StringFixed(2))
	assert.Equal(t, 2, first.Line)
	assert.True(t, first.Components.PIS.IsZero(), "components are filled by the allocator")

	second := got[1]
	assert.Equal(t, "98765432000199", second.PayerID)
	assert.Equal(t, "BETA SERVICOS S/A", second.PayerName)
	assert.Equal(t, 1708, second.IncomeCode)
	assert.Equal(t, "2500.00", second.GrossAmount.StringFixed(2))
	assert.Equal(t, "37.50", second.Withheld.StringFixed(2))
}

func TestParseDIRF_Latin1Name(t *testing.T) {
	raw := []byte("12345678901234 1 JOS\xc9 CONSTRU\xc7\xd5ES    20230415 5706 000000000100000 000000000001500")
	text, err := DecodeLatin1(raw)
	require.NoError(t, err)

	got := ParseDIRF(text)
	require.Len(t, got, 1)
	assert.Equal(t, "JOSÉ CONSTRUÇÕES", got[0].PayerName)
}

func TestDecodeUTF8OrLatin1(t *testing.T) {
	t.Run("valid utf-8 is kept", func(t *testing.T) {
		got, err := DecodeUTF8OrLatin1([]byte("|Y570|1|AÇÃO|"))
		require.NoError(t, err)
		assert.Equal(t, "|Y570|1|AÇÃO|", got)
	})

	t.Run("invalid utf-8 falls back to latin-1", func(t *testing.T) {
		got, err := DecodeUTF8OrLatin1([]byte("|Y570|1|A\xc7\xc3O|"))
		require.NoError(t, err)
		assert.Equal(t, "|Y570|1|AÇÃO|", got)
	})

	t.Run("empty input", func(t *testing.T) {
		got, err := DecodeUTF8OrLatin1(nil)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestParseECF(t *testing.T) {
	text := strings.Join([]string{
		"|0000|LECF|0010|12345678000190|EMPRESA TESTE|",
		"",
		"   ",
		"|Y570|12345678901234|ACME PAGADORA|N|4085|100000,00|0,00|107,53|",
		"|Y570|98765432000199|BETA|N|1708|2500,00|37,50|0,00|",
		"|9999|3|",
	}, "\n")

	t.Run("first row defines the columns", func(t *testing.T) {
		got := ParseECF(text, RaggedExclude)
		assert.Equal(t, []string{"col_0", "col_1", "col_2", "col_3", "col_4", "col_5", "col_6"}, got.Columns)
	})

	// The first row is 7 fields wide while Y570 rows are 10 wide. This is the
	// ragged-row edge case: each policy has to be chosen explicitly.
	t.Run("exclude policy reports mismatched rows", func(t *testing.T) {
		got := ParseECF(text, RaggedExclude)
		require.Len(t, got.Rows, 1)
		assert.Equal(t, 1, got.Rows[0].Line)
		require.Len(t, got.Mismatches, 3)
		assert.Equal(t, []int{4, 5, 6}, []int{got.Mismatches[0].Line, got.Mismatches[1].Line, got.Mismatches[2].Line})
		assert.Equal(t, "Y570", got.Mismatches[0].Field(1))
	})

	t.Run("pad policy widens every row to the widest one", func(t *testing.T) {
		got := ParseECF(text, RaggedPad)
		require.Len(t, got.Rows, 4)
		assert.Empty(t, got.Mismatches)
		assert.Len(t, got.Columns, 10)
		for _, row := range got.Rows {
			assert.Len(t, row.Fields, 10)
		}
		assert.Equal(t, []string{"", "9999", "3", "", "", "", "", "", "", ""}, got.Rows[3].Fields)
		assert.Equal(t, "", got.Rows[0].Field(9))
	})

	t.Run("pad policy keeps amounts after a narrow header", func(t *testing.T) {
		got := ParseECF("|0000|LECF|\n|Y570|11111111000111|ACME|N|1708|10000,00|150,00|0,00|\n", RaggedPad)
		require.Len(t, got.Rows, 2)
		assert.Len(t, got.Columns, 10)
		assert.Equal(t, []string{"", "0000", "LECF", "", "", "", "", "", "", ""}, got.Rows[0].Fields)
		assert.Equal(t, "150,00", got.Rows[1].Field(7))
		assert.Equal(t, "0,00", got.Rows[1].Field(8))
	})

	t.Run("uniform rows", func(t *testing.T) {
		got := ParseECF("|Y570|1|A|N|1|2|3|4|\n|Y570|2|B|N|1|2|3|4|\n", RaggedExclude)
		assert.Len(t, got.Columns, 10)
		assert.Len(t, got.Rows, 2)
		assert.Empty(t, got.Mismatches)
		assert.Equal(t, "B", got.Rows[1].Field(3))
		assert.Equal(t, "", got.Rows[1].Field(42))
	})

	t.Run("empty input gives an empty table", func(t *testing.T) {
		got := ParseECF("\n\n  \n", RaggedExclude)
		assert.True(t, got.Empty())
		assert.Nil(t, got.Columns)
	})
}

func TestParseRaggedRowPolicy(t *testing.T) {
	p, err := ParseRaggedRowPolicy("")
	require.NoError(t, err)
	assert.Equal(t, RaggedExclude, p)

	p, err = ParseRaggedRowPolicy(" PAD ")
	require.NoError(t, err)
	assert.Equal(t, RaggedPad, p)

	_, err = ParseRaggedRowPolicy("guess")
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("DIRF")
	require.NoError(t, err)
	assert.Equal(t, FormatDIRF, f)

	_, err = ParseFormat("csv")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
