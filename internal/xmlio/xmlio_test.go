package xmlio_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/zugferd/internal/model"
	"github.com/rezonia/zugferd/internal/profile"
	"github.com/rezonia/zugferd/internal/xmlio"
)

func TestWriter_GatesFieldsByProfile(t *testing.T) {
	table := profile.For(profile.Version23, profile.FamilyCII)
	w := xmlio.NewWriter(table, profile.Minimum, zerolog.Nop())

	amount := decimal.RequireFromString("12.5")
	date := time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC)

	w.Root("rsm:CrossIndustryInvoice", xmlio.CIINamespaces)
	w.Section("", "rsm:ExchangedDocument", func() {
		w.Element(profile.FieldDocumentID, "ram:ID", "R-1")
		w.Element(profile.FieldDocumentName, "ram:Name", "RECHNUNG")
		w.Element(profile.FieldDocumentID, "ram:Empty", "")
		w.Date(profile.FieldIssueDate, "ram:IssueDateTime", "udt:DateTimeString", &date)
		w.Optional("", "ram:IncludedNote", func() {
			w.Element(profile.FieldNote, "ram:Content", "dropped in Minimum")
		})
	})
	w.Amount(profile.FieldTotalGrand, "ram:GrandTotalAmount", &amount, xmlio.A("currencyID", "EUR"), xmlio.A("unused", ""))
	w.Amount(profile.FieldTotalPrepaid, "ram:TotalPrepaidAmount", &amount)
	w.Decimal(profile.FieldTotalGrand, "ram:Nil", nil, 2)
	w.Indicator(profile.FieldTestIndicator, "ram:TestIndicator", "udt:Indicator", true)

	out, err := w.Bytes()
	require.NoError(t, err)
	xml := string(out)

	assert.True(t, strings.HasPrefix(xml, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, xml, `xmlns:rsm="urn:un:unece:uncefact:data:standard:CrossIndustryInvoice:100"`)
	assert.Contains(t, xml, "<ram:ID>R-1</ram:ID>")
	assert.NotContains(t, xml, "RECHNUNG")
	assert.NotContains(t, xml, "ram:Empty")
	assert.NotContains(t, xml, "IncludedNote")
	assert.Contains(t, xml, `<udt:DateTimeString format="102">20260203</udt:DateTimeString>`)
	assert.Contains(t, xml, `<ram:GrandTotalAmount currencyID="EUR">12.50</ram:GrandTotalAmount>`)
	assert.NotContains(t, xml, "unused")
	assert.NotContains(t, xml, "TotalPrepaidAmount")
	assert.NotContains(t, xml, "ram:Nil")
	assert.Contains(t, xml, "<udt:Indicator>true</udt:Indicator>")
	assert.Contains(t, xml, "\n  <rsm:ExchangedDocument>")
	assert.Equal(t, profile.Minimum, w.Profile())
}

func TestWriter_SectionKeepsEmptyWrapper(t *testing.T) {
	w := xmlio.NewWriter(profile.For(profile.Version23, profile.FamilyCII), profile.Basic, zerolog.Nop())
	w.Root("rsm:CrossIndustryInvoice", xmlio.CIINamespaces)
	w.Section("", "ram:ApplicableHeaderTradeDelivery", func() {})

	out, err := w.Bytes()
	require.NoError(t, err)
	assert.Contains(t, string(out), "<ram:ApplicableHeaderTradeDelivery/>")
}

const altPrefixDoc = `<?xml version="1.0" encoding="UTF-8"?>
<inv:CrossIndustryInvoice
    xmlns:inv="urn:un:unece:uncefact:data:standard:CrossIndustryInvoice:100"
    xmlns:a="urn:un:unece:uncefact:data:standard:ReusableAggregateBusinessInformationEntity:100"
    xmlns:u="urn:un:unece:uncefact:data:standard:UnqualifiedDataType:100"
    xmlns:q="urn:un:unece:uncefact:data:standard:QualifiedDataType:100"
    xmlns:other="urn:example:other">
  <inv:ExchangedDocument>
    <a:ID> 4711 </a:ID>
    <other:ID>wrong namespace</other:ID>
    <a:IssueDateTime><u:DateTimeString format="102">20260115</u:DateTimeString></a:IssueDateTime>
    <a:IncludedNote><a:Content>first</a:Content></a:IncludedNote>
    <a:IncludedNote><a:Content>second</a:Content></a:IncludedNote>
  </inv:ExchangedDocument>
  <inv:SupplyChainTradeTransaction>
    <a:Amount currencyID="EUR">10,50</a:Amount>
    <a:Flag>true</a:Flag>
    <a:Formatted><q:DateTimeString format="610">202602</q:DateTimeString></a:Formatted>
    <a:Week><q:DateTimeString format="616">202601</q:DateTimeString></a:Week>
    <a:Bare>2026-03-04</a:Bare>
    <a:Both>
      <u:DateTimeString format="102">20260101</u:DateTimeString>
      <q:DateTimeString format="102">20261231</q:DateTimeString>
    </a:Both>
  </inv:SupplyChainTradeTransaction>
</inv:CrossIndustryInvoice>`

func TestNavigator_ResolvesByNamespaceURI(t *testing.T) {
	doc, err := xmlio.ReadDocument(strings.NewReader(altPrefixDoc))
	require.NoError(t, err)

	nav := xmlio.NewNavigator(xmlio.CIINamespaces)
	root := doc.Root()

	assert.Equal(t, "4711", nav.Text(root, "rsm:ExchangedDocument/ram:ID"))
	assert.Len(t, nav.FindAll(root, "rsm:ExchangedDocument/ram:ID"), 1)
	assert.Equal(t, []string{"first", "second"}, nav.Texts(root, "rsm:ExchangedDocument/ram:IncludedNote/ram:Content"))
	assert.Equal(t, "", nav.Text(root, "rsm:ExchangedDocument/ram:Missing"))
	assert.False(t, nav.Exists(root, "ram:ExchangedDocument"))

	tx := nav.Find(root, "rsm:SupplyChainTradeTransaction")
	require.NotNil(t, tx)
	amount := nav.Decimal(tx, "ram:Amount")
	require.NotNil(t, amount)
	assert.Equal(t, "10.5", amount.String())
	assert.Equal(t, "EUR", nav.Attr(tx, "ram:Amount", "currencyID"))
	assert.True(t, nav.Bool(tx, "ram:Flag"))
	assert.Nil(t, nav.Decimal(tx, "ram:Flag"))
}

func TestNavigator_DateStrategies(t *testing.T) {
	doc, err := xmlio.ReadDocument(strings.NewReader(altPrefixDoc))
	require.NoError(t, err)

	nav := xmlio.NewNavigator(xmlio.CIINamespaces)
	root := doc.Root()
	tx := nav.Find(root, "rsm:SupplyChainTradeTransaction")

	tests := []struct {
		name string
		ctx  string
		path string
		want time.Time
	}{
		{"udt string", "doc", "ram:IssueDateTime", time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)},
		{"qdt month", "tx", "ram:Formatted", time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
		{"qdt week", "tx", "ram:Week", time.Date(2025, 12, 29, 0, 0, 0, 0, time.UTC)},
		{"bare iso", "tx", "ram:Bare", time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)},
		{"udt preferred", "tx", "ram:Both", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := tx
			if tt.ctx == "doc" {
				ctx = nav.Find(root, "rsm:ExchangedDocument")
			}
			got := nav.Date(ctx, xmlio.CIIDate(tt.path)...)
			require.NotNil(t, got)
			assert.True(t, tt.want.Equal(*got), "got %s", got)
		})
	}

	assert.Nil(t, nav.Date(tx, xmlio.CIIDate("ram:Missing")...))
	assert.Nil(t, nav.Date(nil, xmlio.CIIDate("ram:Bare")...))
}

func TestReadDocument_Malformed(t *testing.T) {
	_, err := xmlio.ReadDocument(strings.NewReader("<a><b></a>"))
	require.Error(t, err)

	_, err = xmlio.ReadDocument(strings.NewReader(""))
	require.Error(t, err)
}

func TestParseDate(t *testing.T) {
	got, err := xmlio.ParseDate("102", "20240229")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", xmlio.FormatISODate(got))
	assert.Equal(t, "20240229", xmlio.FormatDate102(got))

	_, err = xmlio.ParseDate("102", "2024-02-29")
	require.Error(t, err)

	_, err = xmlio.ParseDate("616", "202660")
	require.Error(t, err)

	_, err = xmlio.ParseDate("999", "20240229")
	require.Error(t, err)
}

func TestWriteRestoring(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out.xml"))
	require.NoError(t, err)
	defer f.Close()

	_, err = f.WriteString("PREFIX")
	require.NoError(t, err)

	require.NoError(t, xmlio.WriteRestoring(f, []byte("<doc/>")))

	pos, err := f.Seek(0, io.SeekCurrent)
	require.NoError(t, err)
	assert.Equal(t, int64(6), pos)

	rest, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "<doc/>", string(rest))
}

type brokenSeeker struct{}

func (brokenSeeker) Write(p []byte) (int, error)    { return len(p), nil }
func (brokenSeeker) Seek(int64, int) (int64, error) { return 0, errors.New("not seekable") }

func TestWriteRestoring_StreamErrors(t *testing.T) {
	err := xmlio.WriteRestoring(brokenSeeker{}, []byte("<doc/>"))
	var se *model.StreamAccessError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "seek", se.Op)

	err = xmlio.WriteRestoring(nil, nil)
	require.True(t, errors.As(err, &se))
}

func TestBuffer(t *testing.T) {
	var b xmlio.Buffer
	_, err := b.Write([]byte("PREFIX"))
	require.NoError(t, err)

	require.NoError(t, xmlio.WriteRestoring(&b, []byte("<doc/>")))
	assert.Equal(t, "PREFIX<doc/>", string(b.Bytes()))

	pos, err := b.Seek(0, io.SeekCurrent)
	require.NoError(t, err)
	assert.Equal(t, int64(6), pos)

	_, err = b.Write([]byte("<new/>"))
	require.NoError(t, err)
	assert.Equal(t, "PREFIX<new/>", string(b.Bytes()))

	_, err = b.Seek(-1, io.SeekStart)
	assert.Error(t, err)
}
