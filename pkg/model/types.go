package model

import internalmodel "github.com/goliatone/go-studentservices/internal/model"

// FieldType re-exports the internal FieldType enumeration.
type FieldType = internalmodel.FieldType

const (
	FieldTypeString  = internalmodel.FieldTypeString
	FieldTypeInteger = internalmodel.FieldTypeInteger
	FieldTypeNumber  = internalmodel.FieldTypeNumber
	FieldTypeBoolean = internalmodel.FieldTypeBoolean
	FieldTypeObject  = internalmodel.FieldTypeObject
)

const (
	ValidationRuleMinLength = internalmodel.ValidationRuleMinLength
	ValidationRuleMaxLength = internalmodel.ValidationRuleMaxLength
	ValidationRulePattern   = internalmodel.ValidationRulePattern
	ValidationRuleFormat    = internalmodel.ValidationRuleFormat
)

const (
	MetadataVisibilityRule = internalmodel.MetadataVisibilityRule
	MetadataOrder          = internalmodel.MetadataOrder
	HintWidget             = internalmodel.HintWidget
	HintIcon               = internalmodel.HintIcon
	HintIconRaw            = internalmodel.HintIconRaw
	HintInputType          = internalmodel.HintInputType
)

type ValidationRule = internalmodel.ValidationRule
type Option = internalmodel.Option
type Field = internalmodel.Field
type FormModel = internalmodel.FormModel
