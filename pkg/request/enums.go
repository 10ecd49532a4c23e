package request

// Program is the student's study program.
type Program string

const (
	ProgramACCA       Program = "acca"
	ProgramBTC        Program = "btc"
	ProgramFoundation Program = "foundation"
	ProgramLLB        Program = "llb"
	ProgramLLM        Program = "llm"
)

// Programs lists every program in display order.
func Programs() []Program {
	return []Program{ProgramACCA, ProgramBTC, ProgramFoundation, ProgramLLB, ProgramLLM}
}

// Valid reports whether p is a known program.
func (p Program) Valid() bool {
	return contains(Programs(), p)
}

// InquiryType is the top-level category that gates the sub-type panels.
type InquiryType string

const (
	InquiryGeneral     InquiryType = "general"
	InquiryFeedback    InquiryType = "feedback"
	InquiryFeePayment  InquiryType = "fee-payment"
	InquiryComplaint   InquiryType = "complaint"
	InquiryTestimonial InquiryType = "testimonial"
	InquiryAcademic    InquiryType = "academic"
)

// InquiryTypes lists every inquiry type in display order.
func InquiryTypes() []InquiryType {
	return []InquiryType{
		InquiryGeneral, InquiryFeedback, InquiryFeePayment,
		InquiryComplaint, InquiryTestimonial, InquiryAcademic,
	}
}

// Valid reports whether t is a known inquiry type.
func (t InquiryType) Valid() bool {
	return contains(InquiryTypes(), t)
}

// ComplaintType refines a complaint inquiry.
type ComplaintType string

const (
	ComplaintNotApplicable  ComplaintType = "not-applicable"
	ComplaintTeacherConduct ComplaintType = "teacher-conduct"
	ComplaintStaffConduct   ComplaintType = "staff-conduct"
	ComplaintCleanliness    ComplaintType = "cleanliness"
	ComplaintUtilities      ComplaintType = "utilities"
	ComplaintOther          ComplaintType = "other"
)

// ComplaintTypes lists every complaint type in display order.
func ComplaintTypes() []ComplaintType {
	return []ComplaintType{
		ComplaintNotApplicable, ComplaintTeacherConduct, ComplaintStaffConduct,
		ComplaintCleanliness, ComplaintUtilities, ComplaintOther,
	}
}

// Valid reports whether t is a known complaint type.
func (t ComplaintType) Valid() bool {
	return contains(ComplaintTypes(), t)
}

// AcademicIssueType refines an academic inquiry.
type AcademicIssueType string

const (
	AcademicNotApplicable      AcademicIssueType = "not-applicable"
	AcademicModuleRegistration AcademicIssueType = "module-registration"
	AcademicExamEntry          AcademicIssueType = "exam-entry"
	AcademicBarApplication     AcademicIssueType = "bar-application"
	AcademicLLMBursary         AcademicIssueType = "llm-bursary"
	AcademicResultIssue        AcademicIssueType = "result-issue"
	AcademicATHECertificate    AcademicIssueType = "athe-certificate"
	AcademicFeePayment         AcademicIssueType = "fee-payment"
)

// AcademicIssueTypes lists every academic issue type in display order.
func AcademicIssueTypes() []AcademicIssueType {
	return []AcademicIssueType{
		AcademicNotApplicable, AcademicModuleRegistration, AcademicExamEntry,
		AcademicBarApplication, AcademicLLMBursary, AcademicResultIssue,
		AcademicATHECertificate, AcademicFeePayment,
	}
}

// Valid reports whether t is a known academic issue type.
func (t AcademicIssueType) Valid() bool {
	return contains(AcademicIssueTypes(), t)
}

func contains[T comparable](values []T, v T) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
