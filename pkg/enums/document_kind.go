package enums

type DocumentKind string

const (
	DocumentKindDrawing  DocumentKind = "drawing"
	DocumentKindContract DocumentKind = "contract"
	DocumentKindImage    DocumentKind = "image"
	DocumentKindInvoice  DocumentKind = "invoice"
	DocumentKindOther    DocumentKind = "other"
)

func (k DocumentKind) IsValid() bool {
	switch k {
	case DocumentKindDrawing, DocumentKindContract, DocumentKindImage, DocumentKindInvoice, DocumentKindOther:
		return true
	}
	return false
}
