package ofx

import (
	"context"
	"strings"
	"testing"

	"github.com/aclindsa/ofxgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ofxTransactionWithName(name string) ofxgo.Transaction {
	return ofxgo.Transaction{Name: ofxgo.String(name)}
}

// Sample OFX data for testing.
const sampleBankOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20250615120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>AUD
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>1234567890
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20250601120000[0:GMT]
<DTEND>20250630120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20250603120000[0:GMT]
<TRNAMT>-25.50
<FITID>2025060301
<NAME>WOOLWORTHS 1234
</STMTTRN>
<STMTTRN>
<TRNTYPE>XFER
<DTPOSTED>20250614120000[0:GMT]
<TRNAMT>-200.00
<FITID>2025061401
<NAME>TRANSFER TO SAVINGS
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20250630120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

func TestParseFile_BankStatement(t *testing.T) {
	parser := NewParser()
	txns, err := parser.ParseFile(context.Background(), strings.NewReader(sampleBankOFX))
	require.NoError(t, err)
	require.Len(t, txns, 2)

	assert.Equal(t, "2025060301", txns[0].ID)
	assert.Equal(t, "WOOLWORTHS 1234", txns[0].Description)
	assert.Equal(t, int64(-2550), txns[0].AmountCents)
	assert.Equal(t, "1234567890", txns[0].AccountID)
	assert.False(t, txns[0].IsInternalTransfer)
	assert.NotEmpty(t, txns[0].Hash)

	assert.Equal(t, int64(-20000), txns[1].AmountCents)
	assert.True(t, txns[1].IsInternalTransfer)
}

func TestParseFile_InvalidContent(t *testing.T) {
	parser := NewParser()
	_, err := parser.ParseFile(context.Background(), strings.NewReader("this is not OFX"))
	require.Error(t, err)
}

func TestGetAccounts(t *testing.T) {
	parser := NewParser()
	accounts, err := parser.GetAccounts(context.Background(), strings.NewReader(sampleBankOFX))
	require.NoError(t, err)
	assert.Equal(t, []string{"1234567890"}, accounts)
}

func TestExtractDescription_StripsPrefixes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "pos prefix", in: "POS PURCHASE WOOLWORTHS", want: "WOOLWORTHS"},
		{name: "date prefix", in: "06/03 WOOLWORTHS", want: "WOOLWORTHS"},
		{name: "plain name untouched", in: "WOOLWORTHS", want: "WOOLWORTHS"},
	}

	p := NewParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.extractDescription(ofxTransactionWithName(tt.in))
			assert.Equal(t, tt.want, got)
		})
	}
}
