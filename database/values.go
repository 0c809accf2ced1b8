package database

import (
	"cloud.google.com/go/firestore/apiv1/firestorepb"
)

// FromProtoFields converts the fields of a Firestore wire document into the
// same Go values DocumentSnapshot.Data returns, so trigger payloads and
// point-reads share one decoder.
func FromProtoFields(fields map[string]*firestorepb.Value) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = FromProtoValue(v)
	}
	return out
}

// FromProtoValue converts a single Firestore wire value.
func FromProtoValue(v *firestorepb.Value) any {
	if v == nil {
		return nil
	}
	switch t := v.GetValueType().(type) {
	case *firestorepb.Value_NullValue:
		return nil
	case *firestorepb.Value_BooleanValue:
		return t.BooleanValue
	case *firestorepb.Value_IntegerValue:
		return t.IntegerValue
	case *firestorepb.Value_DoubleValue:
		return t.DoubleValue
	case *firestorepb.Value_TimestampValue:
		if t.TimestampValue == nil {
			return nil
		}
		return t.TimestampValue.AsTime()
	case *firestorepb.Value_StringValue:
		return t.StringValue
	case *firestorepb.Value_BytesValue:
		return t.BytesValue
	case *firestorepb.Value_ReferenceValue:
		return t.ReferenceValue
	case *firestorepb.Value_GeoPointValue:
		return t.GeoPointValue
	case *firestorepb.Value_ArrayValue:
		values := t.ArrayValue.GetValues()
		arr := make([]any, len(values))
		for i, e := range values {
			arr[i] = FromProtoValue(e)
		}
		return arr
	case *firestorepb.Value_MapValue:
		return FromProtoFields(t.MapValue.GetFields())
	default:
		return nil
	}
}
