package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// StructuredAddress 结构化收货地址
type StructuredAddress struct {
	Street     string `json:"street" bson:"street"`
	City       string `json:"city" bson:"city"`
	Province   string `json:"province" bson:"province"`
	PostalCode string `json:"postal_code,omitempty" bson:"postalCode,omitempty"`
}

// Address 收货地址：要么是历史遗留的纯文本，要么是结构化地址
type Address struct {
	Freeform   string
	Structured *StructuredAddress
}

// FreeformAddress 构造纯文本地址
func FreeformAddress(text string) Address {
	return Address{Freeform: text}
}

// NewStructuredAddress 构造结构化地址
func NewStructuredAddress(street, city, province, postalCode string) Address {
	return Address{Structured: &StructuredAddress{
		Street:     street,
		City:       city,
		Province:   province,
		PostalCode: postalCode,
	}}
}

// IsStructured 是否为结构化地址
func (a Address) IsStructured() bool {
	return a.Structured != nil
}

// IsZero 地址是否为空
func (a Address) IsZero() bool {
	return a.Structured == nil && strings.TrimSpace(a.Freeform) == ""
}

// FormatAddress 统一的地址展示文本，追踪页、后台与邮件都使用它
func FormatAddress(a Address) string {
	if a.Structured == nil {
		return strings.TrimSpace(a.Freeform)
	}
	s := a.Structured
	parts := make([]string, 0, 3)
	for _, p := range []string{s.Street, s.City} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	tail := strings.TrimSpace(strings.TrimSpace(s.Province) + " " + strings.TrimSpace(s.PostalCode))
	if tail != "" {
		parts = append(parts, tail)
	}
	return strings.Join(parts, ", ")
}

// MarshalJSON 结构化地址输出对象，纯文本地址输出字符串
func (a Address) MarshalJSON() ([]byte, error) {
	if a.Structured != nil {
		return json.Marshal(a.Structured)
	}
	return json.Marshal(a.Freeform)
}

// UnmarshalJSON 按首字符区分字符串与对象
func (a *Address) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	*a = Address{}
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	switch trimmed[0] {
	case '"':
		return json.Unmarshal(trimmed, &a.Freeform)
	case '{':
		var s StructuredAddress
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		a.Structured = &s
		return nil
	default:
		return fmt.Errorf("address: expected string or object")
	}
}

// Value 关系库中以 JSON 保存
func (a Address) Value() (driver.Value, error) {
	return a.MarshalJSON()
}

// Scan 关系库读取
func (a *Address) Scan(value interface{}) error {
	*a = Address{}
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return a.UnmarshalJSON(v)
	case string:
		return a.UnmarshalJSON([]byte(v))
	default:
		return fmt.Errorf("address: unsupported column type %T", value)
	}
}

// MarshalBSONValue 文档库中保持原有的 string | object 形态
func (a Address) MarshalBSONValue() (bsontype.Type, []byte, error) {
	if a.Structured != nil {
		return bson.MarshalValue(a.Structured)
	}
	return bson.MarshalValue(a.Freeform)
}

// UnmarshalBSONValue 文档库读取
func (a *Address) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	*a = Address{}
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.String:
		a.Freeform = raw.StringValue()
		return nil
	case bsontype.EmbeddedDocument:
		var s StructuredAddress
		if err := raw.Unmarshal(&s); err != nil {
			return err
		}
		a.Structured = &s
		return nil
	case bsontype.Null, bsontype.Undefined:
		return nil
	default:
		return fmt.Errorf("address: unsupported bson type %s", t)
	}
}
