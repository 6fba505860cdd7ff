package domain

var (
	MessageSuccessAddReference  = "added to reference data"
	MessageSuccessInitReference = "ReferenceData sheet initialized"
	MessageReferenceKept        = "ReferenceData sheet already exists with data"
)

const (
	ReferenceSource      = "Source"
	ReferenceBenefitType = "BenefitType"
	ReferenceClaimType   = "ClaimType"
)

var ReferenceTypes = []string{ReferenceSource, ReferenceBenefitType, ReferenceClaimType}

func IsReferenceType(v string) bool { return contains(ReferenceTypes, v) }

type (
	ReferenceEntry struct {
		Type        string `json:"type"`
		Value       string `json:"value"`
		DisplayName string `json:"displayName"`
		Description string `json:"description"`
	}

	GetReferenceDataRequest struct {
		Type string `json:"type"`
	}

	ReferenceData struct {
		Entries []*ReferenceEntry            `json:"referenceData"`
		Grouped map[string][]*ReferenceEntry `json:"grouped"`
		Count   int                          `json:"count"`
	}

	AddReferenceItemRequest struct {
		Type        string `json:"type"`
		Value       string `json:"value"`
		DisplayName string `json:"displayName"`
		Description string `json:"description"`
	}

	InitReferenceResponse struct {
		Created bool   `json:"created"`
		Entries int    `json:"entries"`
		Message string `json:"message"`
	}
)

// Values returns the entry values for one reference type, in sheet order.
func (d *ReferenceData) Values(refType string) []string {
	entries := d.Grouped[refType]
	if len(entries) == 0 {
		return nil
	}
	values := make([]string, 0, len(entries))
	for _, e := range entries {
		values = append(values, e.Value)
	}
	return values
}

// DefaultReferenceEntries seeds a fresh ReferenceData sheet.
func DefaultReferenceEntries() []*ReferenceEntry {
	return []*ReferenceEntry{
		{Type: ReferenceSource, Value: "Avega Managed Care", DisplayName: "Avega Managed Care", Description: "HMO provider"},
		{Type: ReferenceBenefitType, Value: "maternity_assistance", DisplayName: "Maternity Assistance"},
		{Type: ReferenceBenefitType, Value: "medicine_reimbursement", DisplayName: "Medicine (Confinement)"},
		{Type: ReferenceBenefitType, Value: "pet_support", DisplayName: "Pet Support Program"},
		{Type: ReferenceBenefitType, Value: "optical", DisplayName: "Optical Benefit"},
		{Type: ReferenceBenefitType, Value: "psychology_sessions", DisplayName: "Psychology Sessions"},
		{Type: ReferenceBenefitType, Value: "dental_reimbursement", DisplayName: "Dental (Provincial)"},
		{Type: ReferenceClaimType, Value: "OT", DisplayName: "Outpatient Treatment"},
		{Type: ReferenceClaimType, Value: "OL", DisplayName: "Outpatient Lab"},
		{Type: ReferenceClaimType, Value: "DP", DisplayName: "Dental Procedure"},
		{Type: ReferenceClaimType, Value: "APE", DisplayName: "Annual Physical Exam"},
		{Type: ReferenceClaimType, Value: "PS", DisplayName: "Pet Support"},
		{Type: ReferenceClaimType, Value: "OP", DisplayName: "Optical"},
		{Type: ReferenceClaimType, Value: "PY", DisplayName: "Psychology"},
		{Type: ReferenceClaimType, Value: "MT", DisplayName: "Maternity"},
		{Type: ReferenceClaimType, Value: "MR", DisplayName: "Medicine Reimbursement"},
	}
}
