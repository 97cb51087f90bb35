package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/link2cory/echo-hello-world/internal/model"
	"github.com/link2cory/echo-hello-world/internal/params"
	"github.com/link2cory/echo-hello-world/internal/schema"
	"github.com/link2cory/echo-hello-world/internal/server"
	"github.com/link2cory/echo-hello-world/internal/service"
	"github.com/link2cory/echo-hello-world/internal/validation"
)

// ExamplesHandler is the request-handling showcase: path, query, header,
// cookie, body, form and file parameters, response models, status codes and
// application errors.
type ExamplesHandler struct {
	Handler
	catalog *service.CatalogService
}

func NewExamplesHandler(s *server.Server, catalog *service.CatalogService) *ExamplesHandler {
	return &ExamplesHandler{
		Handler: NewHandler(s),
		catalog: catalog,
	}
}

type object = map[string]any

// Endpoints is the route table of the showcase.
func (h *ExamplesHandler) Endpoints() []Endpoint {
	requestBody := schema.Object(model.RequestBody)

	return []Endpoint{
		// ---------------- Path parameters -------------------------------------
		{
			Method:  http.MethodGet,
			Path:    "/",
			Name:    "read_root",
			Handler: h.ReadRoot,
		},
		{
			Method:  http.MethodGet,
			Path:    "/items/:item_id",
			Name:    "read_item",
			Params:  []params.Param{params.Infer("item_id", schema.Int())},
			Handler: h.ReadItem,
		},
		{
			Method:  http.MethodGet,
			Path:    "/model/:model_name",
			Name:    "get_model",
			Params:  []params.Param{params.Infer("model_name", schema.EnumOf(model.ModelName))},
			Handler: h.GetModel,
		},

		// ---------------- Query parameters ------------------------------------
		{
			Method: http.MethodGet,
			Path:   "/query_params/",
			Name:   "get_query",
			Params: []params.Param{
				params.Infer("my_query_param", schema.Int(), params.Default(int64(0))),
				params.Infer("my_boolean_query_param", schema.Bool(), params.Default(false)),
				params.Infer("my_optional_param", schema.Int(), params.Optional()),
			},
			Handler: h.HelloWorld,
		},
		{
			Method:  http.MethodGet,
			Path:    "/explicit_query/",
			Name:    "get_explicit_query",
			Summary: "Query parameters with declared constraints",
			Params: []params.Param{
				params.Query("my_query", schema.String(),
					params.Optional(),
					params.Constraints(
						validation.MinLength(3),
						validation.MaxLength(50),
						validation.Pattern("^[a-z]+$"),
					),
					params.Describe("Query string", "Lowercase letters only"),
				),
				params.Query("limit", schema.Int(),
					params.Default(int64(10)),
					params.Constraints(validation.Ge(1), validation.Le(100)),
				),
			},
			Handler: h.GetExplicitQuery,
		},
		{
			Method: http.MethodGet,
			Path:   "/query_list/",
			Name:   "get_query_list",
			Params: []params.Param{
				params.Query("query_list", schema.ListOf(schema.String()), params.Optional()),
				params.Query("query_list_with_defaults", schema.ListOf(schema.String()),
					params.Default([]any{"foo", "bar"})),
			},
			Handler: h.GetQueryList,
		},

		// ---------------- Body parameters -------------------------------------
		{
			Method:  http.MethodPost,
			Path:    "/request_body/",
			Name:    "post_body",
			Params:  []params.Param{params.Infer("body", requestBody)},
			Handler: h.EchoBody("body"),
		},
		{
			Method: http.MethodPost,
			Path:   "/request_body_multiple/",
			Name:   "post_body_multiple",
			Params: []params.Param{
				params.Infer("body_1", requestBody),
				params.Infer("body_2", requestBody),
			},
			Handler: h.EchoBody("body_1"),
		},
		{
			Method:  http.MethodPost,
			Path:    "/request_body_list/",
			Name:    "post_body_list",
			Params:  []params.Param{params.Infer("bodys", schema.ListOf(requestBody))},
			Handler: h.HelloWorld,
		},
		{
			Method: http.MethodPost,
			Path:   "/request_body_dict_instead_of_model/",
			Name:   "post_body_dict_instead_of_model",
			Params: []params.Param{
				params.Infer("weights", schema.MapOf(schema.Int(), schema.Float())),
			},
			Handler: h.EchoBody("weights"),
		},
		{
			Method:  http.MethodPost,
			Path:    "/request_body_embed/",
			Name:    "post_body_embed",
			Params:  []params.Param{params.Body("body", requestBody, params.Embed())},
			Handler: h.HelloWorld,
		},
		{
			Method:  http.MethodPost,
			Path:    "/request_body_validated/",
			Name:    "post_body_validated",
			Params:  []params.Param{params.Infer("body", schema.Object(model.ValidatedRequestBody))},
			Handler: h.EchoBody("body"),
		},
		{
			Method:  http.MethodPost,
			Path:    "/request_body_subtype/",
			Name:    "post_body_subtype",
			Params:  []params.Param{params.Infer("body", schema.Object(model.SubtypeRequestBody))},
			Handler: h.EchoBody("body"),
		},
		{
			Method:  http.MethodPost,
			Path:    "/request_body_nested/",
			Name:    "post_body_nested",
			Params:  []params.Param{params.Infer("body", schema.Object(model.RequestBodyWithNestedType))},
			Handler: h.EchoBody("body"),
		},
		{
			Method:  http.MethodPost,
			Path:    "/request_body_nested_list/",
			Name:    "post_body_nested_list",
			Params:  []params.Param{params.Infer("body", schema.Object(model.RequestBodyWithNestedTypeList))},
			Handler: h.EchoBody("body"),
		},

		// ---------------- Cookie and header parameters ------------------------
		{
			Method:  http.MethodGet,
			Path:    "/cookies/",
			Name:    "get_cookies",
			Params:  []params.Param{params.Cookie("cookie", schema.String(), params.Optional())},
			Handler: h.EchoParam("cookie", "cookie"),
		},
		{
			Method:  http.MethodGet,
			Path:    "/header/",
			Name:    "get_header",
			Params:  []params.Param{params.Header("header", schema.String(), params.Optional())},
			Handler: h.EchoParam("header", "header"),
		},
		{
			Method: http.MethodGet,
			Path:   "/header_without_conversion/",
			Name:   "get_header_without_conversion",
			Params: []params.Param{
				params.Header("header", schema.String(), params.Optional(), params.NoUnderscoreConversion()),
			},
			Handler: h.EchoParam("header", "header"),
		},
		{
			Method: http.MethodGet,
			Path:   "/header_list/",
			Name:   "get_header_list",
			Params: []params.Param{
				params.Header("x_token", schema.ListOf(schema.String()), params.Optional()),
			},
			Handler: h.EchoParam("x_token", "X-Token values"),
		},

		// ---------------- Response models -------------------------------------
		{
			Method:   http.MethodPost,
			Path:     "/response_model/",
			Name:     "post_response_model",
			Params:   []params.Param{params.Infer("body", requestBody)},
			Response: &schema.Model{Type: schema.Object(model.ResponseModel)},
			Handler:  h.PostResponseModel,
		},
		{
			Method:   http.MethodPost,
			Path:     "/user/",
			Name:     "create_user",
			Params:   []params.Param{params.Infer("user", schema.Object(model.UserIn))},
			Response: &schema.Model{Type: schema.Object(model.UserOut)},
			Handler:  h.EchoBody("user"),
		},
		{
			Method: http.MethodPost,
			Path:   "/user_no_defaults_in_response/",
			Name:   "create_user_no_defaults_in_response",
			Params: []params.Param{params.Infer("user", schema.Object(model.UserIn))},
			Response: &schema.Model{
				Type:         schema.Object(model.UserOut),
				ExcludeUnset: true,
			},
			Handler: h.EchoBody("user"),
		},
		{
			Method: http.MethodPost,
			Path:   "/user_shortcut/",
			Name:   "create_user_shortcut",
			Params: []params.Param{params.Infer("user", schema.Object(model.UserIn))},
			Response: &schema.Model{
				Type:    schema.Object(model.UserIn),
				Exclude: []string{"password"},
			},
			Handler: h.EchoBody("user"),
		},
		{
			Method: http.MethodPost,
			Path:   "/user_another_shortcut/",
			Name:   "create_user_another_shortcut",
			Params: []params.Param{params.Infer("user", schema.Object(model.UserIn))},
			Response: &schema.Model{
				Type:    schema.Object(model.UserIn),
				Include: []string{"username", "full_name", "email"},
			},
			Handler: h.EchoBody("user"),
		},
		{
			Method:   http.MethodPost,
			Path:     "/user_inheritance/",
			Name:     "create_user_inheritance",
			Params:   []params.Param{params.Infer("user", schema.Object(model.UserInNew))},
			Response: &schema.Model{Type: schema.Object(model.UserOutNew)},
			Handler:  h.EchoBody("user"),
		},
		{
			Method:   http.MethodGet,
			Path:     "/vehicles/:vehicle_id",
			Name:     "get_vehicle",
			Params:   []params.Param{params.Infer("vehicle_id", schema.String())},
			Response: &schema.Model{Type: model.Vehicle},
			Handler:  h.GetVehicle,
		},
		{
			Method:   http.MethodGet,
			Path:     "/items_list/",
			Name:     "get_item_list",
			Response: &schema.Model{Type: schema.ListOf(schema.Object(model.Item))},
			Handler:  h.GetItemList,
		},

		// ---------------- Status codes ----------------------------------------
		{
			Method:  http.MethodPost,
			Path:    "/create_a_thing/",
			Name:    "create_a_thing",
			Params:  []params.Param{params.Infer("name", schema.String())},
			Status:  http.StatusCreated,
			Handler: h.EchoParam("name", "name"),
		},

		// ---------------- Forms and files -------------------------------------
		{
			Method: http.MethodPost,
			Path:   "/login_form/",
			Name:   "login",
			Params: []params.Param{
				params.Form("username", schema.String()),
				params.Form("password", schema.String()),
			},
			Handler: h.EchoParam("username", "username"),
		},
		{
			Method:  http.MethodPost,
			Path:    "/files/",
			Name:    "create_file",
			Params:  []params.Param{params.FileBytes("file")},
			Handler: h.CreateFile,
		},
		{
			Method:  http.MethodPost,
			Path:    "/files_that_are_big/",
			Name:    "create_big_file",
			Params:  []params.Param{params.Upload("file")},
			Handler: h.CreateBigFile,
		},
		{
			Method:  http.MethodPost,
			Path:    "/files_multiple/",
			Name:    "create_files",
			Params:  []params.Param{params.FileBytesList("files")},
			Handler: h.CreateFiles,
		},
		{
			// echo requires a leading slash; the route is served at /files_multiple_big/.
			Method:  http.MethodPost,
			Path:    "/files_multiple_big/",
			Name:    "create_big_files",
			Params:  []params.Param{params.UploadList("files")},
			Handler: h.CreateBigFiles,
		},

		// ---------------- Application errors ----------------------------------
		{
			Method:  http.MethodGet,
			Path:    "/items_exception/:item_id",
			Name:    "get_item_exception",
			Params:  []params.Param{params.Infer("item_id", schema.String())},
			Handler: h.GetItemException,
		},
	}
}

func (h *ExamplesHandler) ReadRoot(c echo.Context, in *params.Values) (any, error) {
	return object{"Hello": "World"}, nil
}

func (h *ExamplesHandler) ReadItem(c echo.Context, in *params.Values) (any, error) {
	return object{"item_id": in.Int("item_id")}, nil
}

func (h *ExamplesHandler) GetModel(c echo.Context, in *params.Values) (any, error) {
	name := in.String("model_name")
	return object{
		"model_name": name,
		"message":    h.catalog.ModelMessage(name),
	}, nil
}

// HelloWorld ignores its (validated) input.
func (h *ExamplesHandler) HelloWorld(c echo.Context, in *params.Values) (any, error) {
	return object{"hello": "world"}, nil
}

func (h *ExamplesHandler) GetExplicitQuery(c echo.Context, in *params.Values) (any, error) {
	return object{
		"my_query": in.Get("my_query"),
		"limit":    in.Int("limit"),
	}, nil
}

func (h *ExamplesHandler) GetQueryList(c echo.Context, in *params.Values) (any, error) {
	return object{"query_list": in.Get("query_list")}, nil
}

// EchoBody returns the named parameter unchanged.
func (h *ExamplesHandler) EchoBody(name string) EndpointFunc {
	return func(c echo.Context, in *params.Values) (any, error) {
		return in.Get(name), nil
	}
}

// EchoParam returns {key: value of the named parameter}.
func (h *ExamplesHandler) EchoParam(name, key string) EndpointFunc {
	return func(c echo.Context, in *params.Values) (any, error) {
		return object{key: in.Get(name)}, nil
	}
}

func (h *ExamplesHandler) PostResponseModel(c echo.Context, in *params.Values) (any, error) {
	body := in.Record("body")
	return model.ResponseModel.Build(object{"name": body.String("name")})
}

func (h *ExamplesHandler) GetItemList(c echo.Context, in *params.Values) (any, error) {
	return h.catalog.ListItems(), nil
}

func (h *ExamplesHandler) GetVehicle(c echo.Context, in *params.Values) (any, error) {
	return h.catalog.GetVehicle(in.String("vehicle_id"))
}

func (h *ExamplesHandler) GetItemException(c echo.Context, in *params.Values) (any, error) {
	item, err := h.catalog.GetItem(in.String("item_id"))
	if err != nil {
		return nil, err
	}
	return object{"item": item}, nil
}

func (h *ExamplesHandler) CreateFile(c echo.Context, in *params.Values) (any, error) {
	return object{"file_size": len(in.Bytes("file"))}, nil
}

func (h *ExamplesHandler) CreateBigFile(c echo.Context, in *params.Values) (any, error) {
	upload := in.Upload("file")
	if upload == nil {
		return nil, errors.New("upload parameter not bound")
	}

	h.server.LoggerService.RecordEvent("FileUploaded", map[string]interface{}{
		"filename":     upload.Filename,
		"size_bytes":   upload.Size,
		"content_type": upload.ContentType,
	})

	return object{"filename": upload.Filename}, nil
}

func (h *ExamplesHandler) CreateFiles(c echo.Context, in *params.Values) (any, error) {
	files := in.BytesList("files")
	sizes := make([]int, 0, len(files))
	for _, f := range files {
		sizes = append(sizes, len(f))
	}
	return object{"file_sizes": sizes}, nil
}

func (h *ExamplesHandler) CreateBigFiles(c echo.Context, in *params.Values) (any, error) {
	uploads := in.Uploads("files")
	names := make([]string, 0, len(uploads))
	for _, u := range uploads {
		names = append(names, u.Filename)
	}
	return object{"filenames": names}, nil
}
