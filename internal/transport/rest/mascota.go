package rest

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"biosys/internal/domain"
	"biosys/internal/storage"
)

const maxImagenSize = 5 << 20

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		newErrorResponse(c, http.StatusBadRequest, "identificador inválido")
		return 0, false
	}
	return id, true
}

func uploadInputFromFile(header *multipart.FileHeader) (*storage.UploadInput, func(), error) {
	file, err := header.Open()
	if err != nil {
		return nil, nil, err
	}

	input := &storage.UploadInput{
		File:        file,
		Size:        header.Size,
		ContentType: header.Header.Get("Content-Type"),
		Name:        header.Filename,
	}

	return input, func() { file.Close() }, nil
}

// @Summary Registrar una mascota
// @Security BearerAuth
// @Tags mascotas
// @Accept json
// @Produce json
// @Param input body domain.CreateMascotaInput true "Datos de la mascota"
// @Success 201 {object} response
// @Failure 400 {object} errorResponse
// @Router /api/mascotas [post]
func (h *Handler) createMascota(c *gin.Context) {
	var input domain.CreateMascotaInput
	if err := c.ShouldBindJSON(&input); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "datos de la mascota inválidos")
		return
	}

	mascota, err := h.services.Mascotas.Create(c.Request.Context(), getUserID(c), input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	newResponse(c, http.StatusCreated, "mascota registrada", mascota)
}

// @Summary Listar las mascotas del usuario
// @Security BearerAuth
// @Tags mascotas
// @Produce json
// @Success 200 {object} response
// @Router /api/mascotas [get]
func (h *Handler) listMascotas(c *gin.Context) {
	mascotas, err := h.services.Mascotas.List(c.Request.Context(), getUserID(c), esAdmin(c))
	if err != nil {
		h.handleError(c, err)
		return
	}

	newResponse(c, http.StatusOK, "", mascotas)
}

// @Summary Obtener una mascota
// @Security BearerAuth
// @Tags mascotas
// @Produce json
// @Param id path int true "ID de la mascota"
// @Success 200 {object} response
// @Failure 404 {object} errorResponse
// @Router /api/mascotas/{id} [get]
func (h *Handler) getMascota(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	mascota, err := h.services.Mascotas.GetByID(c.Request.Context(), getUserID(c), esAdmin(c), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	newResponse(c, http.StatusOK, "", mascota)
}

// @Summary Actualizar una mascota
// @Security BearerAuth
// @Tags mascotas
// @Accept json
// @Produce json
// @Param id path int true "ID de la mascota"
// @Param input body domain.UpdateMascotaInput true "Campos a actualizar"
// @Success 200 {object} response
// @Failure 404 {object} errorResponse
// @Router /api/mascotas/{id} [put]
func (h *Handler) updateMascota(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input domain.UpdateMascotaInput
	if err := c.ShouldBindJSON(&input); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "datos de la mascota inválidos")
		return
	}

	mascota, err := h.services.Mascotas.Update(c.Request.Context(), getUserID(c), esAdmin(c), id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	newResponse(c, http.StatusOK, "mascota actualizada", mascota)
}

// @Summary Eliminar una mascota
// @Security BearerAuth
// @Tags mascotas
// @Produce json
// @Param id path int true "ID de la mascota"
// @Success 200 {object} response
// @Failure 404 {object} errorResponse
// @Router /api/mascotas/{id} [delete]
func (h *Handler) deleteMascota(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.services.Mascotas.Delete(c.Request.Context(), getUserID(c), esAdmin(c), id); err != nil {
		h.handleError(c, err)
		return
	}

	newResponse(c, http.StatusOK, "mascota eliminada", nil)
}

// @Summary Subir la foto de una mascota
// @Security BearerAuth
// @Tags mascotas
// @Accept mpfd
// @Produce json
// @Param id path int true "ID de la mascota"
// @Param foto formData file true "Imagen de la mascota"
// @Success 200 {object} response
// @Failure 400 {object} errorResponse
// @Router /api/mascotas/{id}/foto [post]
func (h *Handler) subirFotoMascota(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	header, err := c.FormFile("foto")
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "se requiere el archivo de la foto")
		return
	}
	if header.Size > maxImagenSize {
		newErrorResponse(c, http.StatusBadRequest, "la imagen no puede superar los 5 MB")
		return
	}

	input, cerrar, err := uploadInputFromFile(header)
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "no se pudo leer el archivo")
		return
	}
	defer cerrar()

	url, err := h.services.Mascotas.SubirFoto(c.Request.Context(), getUserID(c), esAdmin(c), id, *input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	newResponse(c, http.StatusOK, "foto actualizada", gin.H{"fotoUrl": url})
}

// imagenOpcional extrae el archivo "imagen" del formulario si está
// presente. Devuelve nil sin error cuando el campo no fue enviado.
func (h *Handler) imagenOpcional(c *gin.Context) (*storage.UploadInput, func(), bool) {
	header, err := c.FormFile("imagen")
	if err != nil {
		return nil, func() {}, true
	}
	if header.Size > maxImagenSize {
		newErrorResponse(c, http.StatusBadRequest, "la imagen no puede superar los 5 MB")
		return nil, nil, false
	}

	input, cerrar, err := uploadInputFromFile(header)
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "no se pudo leer el archivo")
		return nil, nil, false
	}

	return input, cerrar, true
}

// @Summary Registrar una vacuna
// @Security BearerAuth
// @Tags mascotas
// @Accept mpfd
// @Produce json
// @Param id path int true "ID de la mascota"
// @Param nombre formData string true "Nombre de la vacuna"
// @Param fecha formData string true "Fecha de aplicación (YYYY-MM-DD)"
// @Param imagen formData file false "Certificado de la vacuna"
// @Success 201 {object} response
// @Failure 400 {object} errorResponse
// @Router /api/mascotas/{id}/vacunas [post]
func (h *Handler) addVacuna(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	input := domain.CreateVacunaInput{
		Nombre: c.PostForm("nombre"),
		Fecha:  c.PostForm("fecha"),
	}
	if input.Nombre == "" || input.Fecha == "" {
		newErrorResponse(c, http.StatusBadRequest, "el nombre y la fecha de la vacuna son obligatorios")
		return
	}

	imagen, cerrar, ok := h.imagenOpcional(c)
	if !ok {
		return
	}
	defer cerrar()

	vacuna, err := h.services.Mascotas.AddVacuna(c.Request.Context(), getUserID(c), esAdmin(c), id, input, imagen)
	if err != nil {
		h.handleError(c, err)
		return
	}

	newResponse(c, http.StatusCreated, "vacuna registrada", vacuna)
}

// @Summary Listar las vacunas de una mascota
// @Security BearerAuth
// @Tags mascotas
// @Produce json
// @Param id path int true "ID de la mascota"
// @Success 200 {object} response
// @Router /api/mascotas/{id}/vacunas [get]
func (h *Handler) listVacunas(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	vacunas, err := h.services.Mascotas.ListVacunas(c.Request.Context(), getUserID(c), esAdmin(c), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	newResponse(c, http.StatusOK, "", vacunas)
}

// @Summary Registrar una operación
// @Security BearerAuth
// @Tags mascotas
// @Accept mpfd
// @Produce json
// @Param id path int true "ID de la mascota"
// @Param nombre formData string true "Nombre de la operación"
// @Param fecha formData string true "Fecha de la operación (YYYY-MM-DD)"
// @Param descripcion formData string false "Descripción"
// @Param imagen formData file false "Imagen del procedimiento"
// @Success 201 {object} response
// @Failure 400 {object} errorResponse
// @Router /api/mascotas/{id}/operaciones [post]
func (h *Handler) addOperacion(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	input := domain.CreateOperacionInput{
		Nombre:      c.PostForm("nombre"),
		Fecha:       c.PostForm("fecha"),
		Descripcion: c.PostForm("descripcion"),
	}
	if input.Nombre == "" || input.Fecha == "" {
		newErrorResponse(c, http.StatusBadRequest, "el nombre y la fecha de la operación son obligatorios")
		return
	}

	imagen, cerrar, ok := h.imagenOpcional(c)
	if !ok {
		return
	}
	defer cerrar()

	operacion, err := h.services.Mascotas.AddOperacion(c.Request.Context(), getUserID(c), esAdmin(c), id, input, imagen)
	if err != nil {
		h.handleError(c, err)
		return
	}

	newResponse(c, http.StatusCreated, "operación registrada", operacion)
}

// @Summary Listar las operaciones de una mascota
// @Security BearerAuth
// @Tags mascotas
// @Produce json
// @Param id path int true "ID de la mascota"
// @Success 200 {object} response
// @Router /api/mascotas/{id}/operaciones [get]
func (h *Handler) listOperaciones(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	operaciones, err := h.services.Mascotas.ListOperaciones(c.Request.Context(), getUserID(c), esAdmin(c), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	newResponse(c, http.StatusOK, "", operaciones)
}
