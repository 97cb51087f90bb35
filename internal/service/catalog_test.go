package service

import (
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/link2cory/echo-hello-world/internal/errs"
	"github.com/link2cory/echo-hello-world/internal/model"
	"github.com/link2cory/echo-hello-world/internal/repository"
)

func newTestService() *CatalogService {
	logger := zerolog.Nop()
	return NewCatalogService(nil, repository.NewCatalogRepository(&logger))
}

func TestGetItem(t *testing.T) {
	svc := newTestService()

	item, err := svc.GetItem("foo")
	require.NoError(t, err)
	assert.Equal(t, "The Foo Wrestlers", item)

	_, err = svc.GetItem("bar")
	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "Item not found", httpErr.Detail)
}

func TestGetVehicle(t *testing.T) {
	svc := newTestService()

	v, err := svc.GetVehicle("vehicles1")
	require.NoError(t, err)
	assert.Equal(t, "car", v["type"])

	_, err = svc.GetVehicle("nope")
	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, "Vehicle not found", httpErr.Detail)
}

func TestModelMessage(t *testing.T) {
	svc := newTestService()

	assert.Equal(t, "Deep Learning FTW!", svc.ModelMessage(model.AlexNet))
	assert.Equal(t, "LeCNN all the images", svc.ModelMessage(model.LeNet))
	assert.Equal(t, "Have some residuals", svc.ModelMessage(model.ResNet))
}
