package docstore

import "strings"

// Collection names under the per-tenant namespace.
const (
	ColProducts        = "products"
	ColSales           = "sales"
	ColDamages         = "damages"
	ColChallan         = "challan"
	ColLifts           = "lifts"
	ColDeliveryOrders  = "do"
	ColDues            = "dues"
	ColNotes           = "notes"
	ColSRList          = "sr-list"
	ColBusinessProfile = "businessProfile"
	ColAudit           = "audit"
)

// ProfileDocID is the fixed document ID of the single business profile.
const ProfileDocID = "profile"

// Collection returns the tenant-scoped collection path users/{userID}/{name}.
func Collection(userID, name string) string {
	return strings.Join([]string{"users", userID, name}, "/")
}

// Doc returns the tenant-scoped document path users/{userID}/{name}/{docID}.
func Doc(userID, name, docID string) string {
	return strings.Join([]string{"users", userID, name, docID}, "/")
}

// SplitDocPath splits a document path into its collection path and doc ID.
// Returns empty strings when the path has no document segment.
func SplitDocPath(docPath string) (collectionPath, docID string) {
	idx := strings.LastIndex(docPath, "/")
	if idx < 0 {
		return "", ""
	}
	return docPath[:idx], docPath[idx+1:]
}
