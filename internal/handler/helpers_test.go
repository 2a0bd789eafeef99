package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glYohanny/Gucci/internal/apierror"
	"github.com/glYohanny/Gucci/internal/dto"
	"github.com/glYohanny/Gucci/internal/web"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestBindAndValidate(t *testing.T) {
	r := gin.New()
	r.POST("/p", func(c *gin.Context) {
		var req dto.CrearProductoRequest
		if !bindAndValidate(c, &req) {
			return
		}
		c.Status(http.StatusNoContent)
	})

	w := postJSON(r, "/p", `{"codigo":`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "JSON inválido")

	w = postJSON(r, "/p", `{"codigo":"A1","tipo_prenda":"Camisa"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	var ve apierror.ValidationError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ve))
	assert.Equal(t, "El campo nombre es obligatorio", ve.Error)
	assert.Equal(t, "required", ve.Fields["nombre"])

	w = postJSON(r, "/p", `{"codigo":"A1","nombre":"Polo","tipo_prenda":"Polera","estado":"Roto"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ve))
	assert.Equal(t, "El campo estado debe ser uno de: Activo Inactivo Descontinuado", ve.Error)

	w = postJSON(r, "/p", `{"codigo":"A1","nombre":"Polo","tipo_prenda":"Polera","valor_venta":"9990"}`)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRespondError(t *testing.T) {
	cases := []struct {
		err    error
		status int
		msg    string
	}{
		{apierror.Validacion("Stock insuficiente"), http.StatusBadRequest, "Stock insuficiente"},
		{apierror.Conflicto("El código ya existe"), http.StatusConflict, "El código ya existe"},
		{apierror.NoEncontrado("Producto no encontrado"), http.StatusNotFound, "Producto no encontrado"},
		{errors.New("pq: connection refused"), http.StatusInternalServerError, "Error interno del servidor"},
	}
	for _, tc := range cases {
		r := gin.New()
		r.GET("/", func(c *gin.Context) { respondError(c, tc.err) })
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, tc.status, w.Code)
		var body apierror.APIError
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.False(t, body.Success)
		assert.Equal(t, tc.msg, body.Error)
	}
}

func TestParseID(t *testing.T) {
	r := gin.New()
	r.GET("/x/:id", func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id, "page": queryInt(c, "page", 1)})
	})

	for _, bad := range []string{"abc", "0", "-3"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x/"+bad, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code, bad)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x/42?page=oops", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":42,"page":1}`, w.Body.String())
}

func TestPaginas(t *testing.T) {
	tmpl, err := web.Templates()
	require.NoError(t, err)
	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.GET("/", Page(Paginas["/"]))
	r.GET("/inventario/detalle", InventarioDetalle(Paginas["/inventario/detalle"]))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `data-vista="login"`)
	assert.NotContains(t, w.Body.String(), "<nav>")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/inventario/detalle?id=7", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `data-id="7"`)
	assert.Contains(t, w.Body.String(), "<nav>")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/inventario/detalle", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/inventario", w.Header().Get("Location"))

	for path, p := range Paginas {
		assert.NotNil(t, tmpl.Lookup(p.Template), path)
	}
}
