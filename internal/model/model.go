// Package model declares the records exchanged by the example endpoints.
//
// Records are schema descriptors rather than Go structs so that the binder
// can track, per field, whether a value was supplied by the client. Response
// models with ExcludeUnset rely on that.
package model

import (
	"github.com/link2cory/echo-hello-world/internal/schema"
	"github.com/link2cory/echo-hello-world/internal/validation"
)

// ModelName is the closed set accepted by /model/:model_name.
var ModelName = schema.NewEnum("ModelName", "alexnet", "resnet", "lenet")

const (
	AlexNet = "alexnet"
	ResNet  = "resnet"
	LeNet   = "lenet"
)

// Item is a catalog entry.
var Item = schema.New("Item",
	schema.Required("name", schema.String()),
	schema.Required("description", schema.String()),
)

// RequestBody is the plain body used by most POST examples.
var RequestBody = schema.New("MyRequestBody",
	schema.Required("name", schema.String()),
	schema.Required("price", schema.Float()),
	schema.Optional("optional", schema.Bool(), false),
	schema.Nullable("truly_optional", schema.Bool()),
)

// ValidatedRequestBody carries declared field constraints.
var ValidatedRequestBody = schema.New("ValidatedRequestBody",
	schema.Nullable("name", schema.String()).
		With(validation.MaxLength(300)).
		Titled("Name", "The name of the thing"),
	schema.Nullable("price", schema.Float()).
		With(validation.Ge(0)).
		Titled("Price", "The price must be zero or more"),
)

// SubtypeRequestBody has a typed list field.
var SubtypeRequestBody = schema.New("SubtypeRequestBody",
	schema.Required("name", schema.String()),
	schema.Required("price", schema.Float()),
	schema.Optional("tags", schema.ListOf(schema.String()), []any{}),
)

// NestedType is embedded in the nested body examples.
var NestedType = schema.New("NestedType",
	schema.Required("name", schema.String()),
	schema.Required("price", schema.Float()),
)

var RequestBodyWithNestedType = schema.New("RequestBodyWithNestedType",
	schema.Nullable("nested_type", schema.Object(NestedType)),
	schema.Optional("tags", schema.ListOf(schema.String()), []any{}),
)

var RequestBodyWithNestedTypeList = schema.New("RequestBodyWithNestedTypeList",
	schema.Optional("nested_type_list", schema.ListOf(schema.Object(NestedType)), []any{}),
	schema.Optional("tags", schema.ListOf(schema.String()), []any{}),
)

// ResponseModel keeps only the name of a RequestBody.
var ResponseModel = schema.New("MyResponseModel",
	schema.Required("name", schema.String()),
)

// UserIn is what a client sends to create a user.
var UserIn = schema.New("UserIn",
	schema.Required("username", schema.String()),
	schema.Required("password", schema.String()),
	schema.Required("email", schema.String()),
	schema.Nullable("full_name", schema.String()),
)

// UserOut is UserIn without the password. Returning a UserIn record through
// this model drops the password at the response boundary.
var UserOut = schema.New("UserOut",
	schema.Required("username", schema.String()),
	schema.Required("email", schema.String()),
	schema.Nullable("full_name", schema.String()),
)

// UserBase holds the fields shared by UserInNew and UserOutNew.
var UserBase = schema.New("UserBase",
	schema.Required("username", schema.String()),
	schema.Required("email", schema.String()),
	schema.Nullable("full_name", schema.String()),
)

var (
	UserInNew  = UserBase.Extend("UserInNew", schema.Required("password", schema.String()))
	UserOutNew = UserBase.Extend("UserOutNew")
)

// BaseItem is the common part of the vehicle union.
var BaseItem = schema.New("BaseItem",
	schema.Required("description", schema.String()),
	schema.Required("type", schema.String()),
)

var (
	CarItem   = BaseItem.Extend("CarItem", schema.Optional("type", schema.String(), "car"))
	PlaneItem = BaseItem.Extend("PlaneItem",
		schema.Optional("type", schema.String(), "plane"),
		schema.Required("size", schema.Int()),
	)
)

// Vehicle is the response model of /vehicles/:vehicle_id.
var Vehicle = schema.OneOf(PlaneItem, CarItem)
