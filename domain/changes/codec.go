package changes

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"editor-backend/domain/core/entities"
	"editor-backend/domain/core/valueobjects"
	pkgerrors "editor-backend/pkg/errors"
	"editor-backend/pkg/utils"
)

var validate = validator.New()

// valueKind is the Go type a property's new_value/old_value decodes into
type valueKind int

const (
	kindString valueKind = iota
	kindStrings
	kindBool
	kindSubtitledHTML
	kindWorkedExamples
)

var propertyKinds = map[Command]map[string]valueKind{
	CmdEditCollectionProperty: {
		string(CollectionPropertyTitle):        kindString,
		string(CollectionPropertyCategory):     kindString,
		string(CollectionPropertyObjective):    kindString,
		string(CollectionPropertyLanguageCode): kindString,
		string(CollectionPropertyTags):         kindStrings,
	},
	CmdUpdateSkillProperty: {
		string(SkillPropertyDescription):        kindString,
		string(SkillPropertyLanguageCode):       kindString,
		string(SkillPropertySupersedingSkillID): kindString,
		string(SkillPropertyAllQuestionsMerged): kindBool,
	},
	CmdUpdateSkillContentsProperty: {
		string(SkillContentsPropertyExplanation):    kindSubtitledHTML,
		string(SkillContentsPropertyWorkedExamples): kindWorkedExamples,
	},
	CmdUpdateSkillMisconceptionsProperty: {
		string(MisconceptionPropertyName):            kindString,
		string(MisconceptionPropertyNotes):           kindString,
		string(MisconceptionPropertyFeedback):        kindString,
		string(MisconceptionPropertyMustBeAddressed): kindBool,
	},
}

// Marshal encodes a record as a flat JSON object with its cmd. Top-level
// keys are sorted and nested values keep their field order, so the same
// record always encodes to the same bytes. HTML is not escaped.
func Marshal(r Record) ([]byte, error) {
	if r == nil {
		return nil, pkgerrors.NewValidationError("cannot marshal a nil change record")
	}
	body, err := utils.MarshalJSON(r)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s record: %w", r.Command(), err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("failed to flatten %s record: %w", r.Command(), err)
	}
	cmd, err := json.Marshal(r.Command())
	if err != nil {
		return nil, err
	}
	fields["cmd"] = cmd

	return utils.MarshalJSON(fields)
}

// List is an ordered change list
type List []Record

// MarshalJSON implements json.Marshaler
func (l List) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, r := range l {
		if i > 0 {
			buf.WriteByte(',')
		}
		data, err := Marshal(r)
		if err != nil {
			return nil, fmt.Errorf("change %d: %w", i, err)
		}
		buf.Write(data)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler using the strict decoder
func (l *List) UnmarshalJSON(data []byte) error {
	records, err := NewDecoder(true).DecodeList(data)
	if err != nil {
		return err
	}
	*l = records
	return nil
}

// requiredFields lists the keys every record of a command must carry. A
// missing key would otherwise decode to a zero value that replay applies.
var requiredFields = map[Command][]string{
	CmdEditCollectionProperty:            {"property_name", "new_value", "old_value"},
	CmdAddCollectionNode:                 {"exploration_id"},
	CmdDeleteCollectionNode:              {"exploration_id"},
	CmdSwapCollectionNodes:               {"first_index", "second_index"},
	CmdUpdateSkillProperty:               {"property_name", "new_value", "old_value"},
	CmdUpdateSkillContentsProperty:       {"property_name", "new_value", "old_value"},
	CmdAddSkillMisconception:             {"new_misconception_dict"},
	CmdDeleteSkillMisconception:          {"misconception_id"},
	CmdUpdateSkillMisconceptionsProperty: {"property_name", "new_value", "old_value", "misconception_id"},
	CmdAddPrerequisiteSkill:              {"skill_id"},
	CmdDeletePrerequisiteSkill:           {"skill_id"},
	CmdUpdateRubrics:                     {"difficulty", "explanations"},
}

func checkRequiredFields(cmd Command, fields map[string]json.RawMessage) error {
	if cmd == "" {
		return pkgerrors.NewValidationError("change record has no cmd")
	}
	required, ok := requiredFields[cmd]
	if !ok {
		return pkgerrors.NewValidationError("unknown change command %q", cmd)
	}
	for _, key := range required {
		if _, ok := fields[key]; !ok {
			return pkgerrors.NewValidationError("%s record is missing %s", cmd, key).
				WithDetail("field", key)
		}
	}
	return nil
}

// Decoder turns JSON change records back into typed records
type Decoder struct {
	strict bool
}

// NewDecoder creates a decoder. A strict decoder rejects fields the
// record's command does not define.
func NewDecoder(strict bool) *Decoder {
	return &Decoder{strict: strict}
}

// Unmarshal decodes one record with a strict decoder
func Unmarshal(data []byte) (Record, error) {
	return NewDecoder(true).Decode(data)
}

// DecodeList decodes a JSON array of records
func (d *Decoder) DecodeList(data []byte) (List, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, pkgerrors.NewValidationError("change list is not a JSON array").WithCause(err)
	}
	out := make(List, 0, len(raws))
	for i, raw := range raws {
		r, err := d.Decode(raw)
		if err != nil {
			return nil, pkgerrors.Wrap(err, fmt.Sprintf("change %d", i))
		}
		out = append(out, r)
	}
	return out, nil
}

// Decode decodes and validates one record
func (d *Decoder) Decode(data []byte) (Record, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, pkgerrors.NewValidationError("malformed change record").WithCause(err)
	}
	var head struct {
		Cmd Command `json:"cmd"`
	}
	if raw, ok := fields["cmd"]; ok {
		if err := json.Unmarshal(raw, &head.Cmd); err != nil {
			return nil, pkgerrors.NewValidationError("malformed change record").WithCause(err)
		}
	}
	if err := checkRequiredFields(head.Cmd, fields); err != nil {
		return nil, err
	}

	var (
		rec Record
		err error
	)
	switch head.Cmd {
	case CmdEditCollectionProperty:
		var p propertyFields
		p, err = d.decodeProperty(head.Cmd, data)
		rec = EditCollectionProperty{PropertyName: CollectionProperty(p.name), NewValue: p.newValue, OldValue: p.oldValue}
	case CmdAddCollectionNode:
		var r AddCollectionNode
		err = d.decodeInto(data, &struct {
			Cmd Command `json:"cmd"`
			*AddCollectionNode
		}{AddCollectionNode: &r})
		rec = r
	case CmdDeleteCollectionNode:
		var r DeleteCollectionNode
		err = d.decodeInto(data, &struct {
			Cmd Command `json:"cmd"`
			*DeleteCollectionNode
		}{DeleteCollectionNode: &r})
		rec = r
	case CmdSwapCollectionNodes:
		var r SwapCollectionNodes
		err = d.decodeInto(data, &struct {
			Cmd Command `json:"cmd"`
			*SwapCollectionNodes
		}{SwapCollectionNodes: &r})
		rec = r
	case CmdUpdateSkillProperty:
		var p propertyFields
		p, err = d.decodeProperty(head.Cmd, data)
		rec = UpdateSkillProperty{PropertyName: SkillProperty(p.name), NewValue: p.newValue, OldValue: p.oldValue}
	case CmdUpdateSkillContentsProperty:
		var p propertyFields
		p, err = d.decodeProperty(head.Cmd, data)
		rec = UpdateSkillContentsProperty{PropertyName: SkillContentsProperty(p.name), NewValue: p.newValue, OldValue: p.oldValue}
	case CmdAddSkillMisconception:
		var r AddSkillMisconception
		err = d.decodeInto(data, &struct {
			Cmd Command `json:"cmd"`
			*AddSkillMisconception
		}{AddSkillMisconception: &r})
		rec = r
	case CmdDeleteSkillMisconception:
		var r DeleteSkillMisconception
		err = d.decodeInto(data, &struct {
			Cmd Command `json:"cmd"`
			*DeleteSkillMisconception
		}{DeleteSkillMisconception: &r})
		rec = r
	case CmdUpdateSkillMisconceptionsProperty:
		var p propertyFields
		p, err = d.decodeProperty(head.Cmd, data)
		rec = UpdateSkillMisconceptionsProperty{
			PropertyName:    MisconceptionProperty(p.name),
			NewValue:        p.newValue,
			OldValue:        p.oldValue,
			MisconceptionID: p.misconceptionID,
		}
	case CmdAddPrerequisiteSkill:
		var r AddPrerequisiteSkill
		err = d.decodeInto(data, &struct {
			Cmd Command `json:"cmd"`
			*AddPrerequisiteSkill
		}{AddPrerequisiteSkill: &r})
		rec = r
	case CmdDeletePrerequisiteSkill:
		var r DeletePrerequisiteSkill
		err = d.decodeInto(data, &struct {
			Cmd Command `json:"cmd"`
			*DeletePrerequisiteSkill
		}{DeletePrerequisiteSkill: &r})
		rec = r
	case CmdUpdateRubrics:
		var r UpdateRubrics
		err = d.decodeInto(data, &struct {
			Cmd Command `json:"cmd"`
			*UpdateRubrics
		}{UpdateRubrics: &r})
		rec = r
	default:
		return nil, pkgerrors.NewValidationError("unknown change command %q", head.Cmd)
	}
	if err != nil {
		return nil, err
	}

	if err := Validate(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Validate checks a record's fields against its command's rules
func Validate(r Record) error {
	if r == nil {
		return pkgerrors.NewValidationError("change record cannot be nil")
	}
	if err := validate.Struct(r); err != nil {
		return pkgerrors.NewValidationError("invalid %s record", r.Command()).WithCause(err)
	}

	switch v := r.(type) {
	case EditCollectionProperty:
		return checkValues(v.Command(), string(v.PropertyName), v.NewValue, v.OldValue)
	case UpdateSkillProperty:
		return checkValues(v.Command(), string(v.PropertyName), v.NewValue, v.OldValue)
	case UpdateSkillContentsProperty:
		return checkValues(v.Command(), string(v.PropertyName), v.NewValue, v.OldValue)
	case UpdateSkillMisconceptionsProperty:
		return checkValues(v.Command(), string(v.PropertyName), v.NewValue, v.OldValue)
	}
	return nil
}

func (d *Decoder) decodeInto(data []byte, target any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if d.strict {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(target); err != nil {
		return pkgerrors.NewValidationError("malformed change record").WithCause(err)
	}
	return nil
}

type propertyFields struct {
	name            string
	newValue        any
	oldValue        any
	misconceptionID string
}

// decodeProperty decodes the property_name/new_value/old_value family of
// records, typing the values by the property they belong to
func (d *Decoder) decodeProperty(cmd Command, data []byte) (propertyFields, error) {
	var (
		p   propertyFields
		err error
		raw struct {
			Cmd             Command         `json:"cmd"`
			PropertyName    string          `json:"property_name"`
			NewValue        json.RawMessage `json:"new_value"`
			OldValue        json.RawMessage `json:"old_value"`
			MisconceptionID *string         `json:"misconception_id,omitempty"`
		}
	)
	if err = d.decodeInto(data, &raw); err != nil {
		return p, err
	}
	if raw.MisconceptionID != nil {
		if cmd != CmdUpdateSkillMisconceptionsProperty && d.strict {
			return p, pkgerrors.NewValidationError("%s record does not take misconception_id", cmd)
		}
		p.misconceptionID = *raw.MisconceptionID
	}

	kind, ok := propertyKinds[cmd][raw.PropertyName]
	if !ok {
		return p, pkgerrors.NewValidationError("unknown property %q for %s", raw.PropertyName, cmd)
	}
	p.name = raw.PropertyName
	if p.newValue, err = decodeValue(kind, raw.NewValue); err != nil {
		return p, pkgerrors.NewValidationError("bad new_value for %s %s", cmd, p.name).WithCause(err)
	}
	if p.oldValue, err = decodeValue(kind, raw.OldValue); err != nil {
		return p, pkgerrors.NewValidationError("bad old_value for %s %s", cmd, p.name).WithCause(err)
	}
	return p, nil
}

func decodeValue(kind valueKind, raw json.RawMessage) (any, error) {
	if len(raw) == 0 {
		raw = json.RawMessage("null")
	}
	switch kind {
	case kindString:
		var v string
		err := json.Unmarshal(raw, &v)
		return v, err
	case kindStrings:
		var v []string
		err := json.Unmarshal(raw, &v)
		return v, err
	case kindBool:
		var v bool
		err := json.Unmarshal(raw, &v)
		return v, err
	case kindSubtitledHTML:
		var v valueobjects.SubtitledHTML
		err := json.Unmarshal(raw, &v)
		return v, err
	case kindWorkedExamples:
		var v []entities.WorkedExample
		err := json.Unmarshal(raw, &v)
		return v, err
	}
	return nil, fmt.Errorf("unsupported value kind %d", kind)
}

// checkValues makes sure in-memory records carry the Go types their
// property decodes into, so a record survives an encode/decode round trip
func checkValues(cmd Command, property string, values ...any) error {
	kind, ok := propertyKinds[cmd][property]
	if !ok {
		return pkgerrors.NewValidationError("unknown property %q for %s", property, cmd)
	}
	for _, v := range values {
		var ok bool
		switch kind {
		case kindString:
			_, ok = v.(string)
		case kindStrings:
			_, ok = v.([]string)
		case kindBool:
			_, ok = v.(bool)
		case kindSubtitledHTML:
			_, ok = v.(valueobjects.SubtitledHTML)
		case kindWorkedExamples:
			_, ok = v.([]entities.WorkedExample)
		}
		if !ok {
			return pkgerrors.NewValidationError("%s %s value has type %T", cmd, property, v)
		}
	}
	return nil
}
