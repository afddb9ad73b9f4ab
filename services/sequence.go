package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"ventas-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Document types known to the sequence generator.
const (
	DocQuotation = "COTIZACION"
	DocSalesNote = "NOTA_VENTA"
)

var docPrefixes = map[string]string{
	DocQuotation: "COT",
	DocSalesNote: "NV",
}

// NextNumber assigns the next document number for docType inside the caller's
// transaction. It reads the current highest number FOR UPDATE so the
// read-then-insert window is serialized by the storage engine rather than any
// in-process counter; concurrent service instances cannot produce duplicates.
// Gaps from rolled-back documents are acceptable.
func NextNumber(tx *gorm.DB, docType string) (string, error) {
	prefix, ok := docPrefixes[docType]
	if !ok {
		return "", ValidationErr("tipo de documento desconocido: %s", docType)
	}

	var last string
	var err error
	switch docType {
	case DocQuotation:
		var q models.Quotation
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Order("id DESC").Limit(1).Take(&q).Error
		last = q.Numero
	case DocSalesNote:
		var n models.SalesNote
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Order("id DESC").Limit(1).Take(&n).Error
		last = n.Numero
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return FormatNumber(prefix, 1), nil
		}
		return "", InfraErr(err, "no se pudo generar el número de documento")
	}

	seq, err := ParseSequence(last)
	if err != nil {
		return "", InfraErr(err, "número de documento corrupto: "+last)
	}
	return FormatNumber(prefix, seq+1), nil
}

// FormatNumber renders prefix + zero-padded 6-digit counter, e.g. NV-000042.
func FormatNumber(prefix string, seq int) string {
	return fmt.Sprintf("%s-%06d", prefix, seq)
}

// ParseSequence extracts the numeric counter from a document number.
func ParseSequence(numero string) (int, error) {
	idx := strings.LastIndex(numero, "-")
	if idx < 0 || idx == len(numero)-1 {
		return 0, fmt.Errorf("malformed document number %q", numero)
	}
	return strconv.Atoi(numero[idx+1:])
}
