package domain

import "time"

type Mascota struct {
	ID           int64     `json:"id"`
	Nombre       string    `json:"nombre"`
	Especie      string    `json:"especie"`
	Raza         string    `json:"raza,omitempty"`
	Edad         int       `json:"edad"`
	Genero       string    `json:"genero"`
	Estado       string    `json:"estado,omitempty"`
	Enfermedades string    `json:"enfermedades,omitempty"`
	Historial    string    `json:"historial,omitempty"`
	FotoURL      string    `json:"fotoUrl,omitempty"`
	UsuarioID    int64     `json:"usuarioId"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Vacuna struct {
	ID        int64     `json:"id"`
	MascotaID int64     `json:"mascotaId"`
	Nombre    string    `json:"nombre"`
	Fecha     time.Time `json:"fecha"`
	ImagenURL string    `json:"imagenUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type Operacion struct {
	ID          int64     `json:"id"`
	MascotaID   int64     `json:"mascotaId"`
	Nombre      string    `json:"nombre"`
	Fecha       time.Time `json:"fecha"`
	Descripcion string    `json:"descripcion,omitempty"`
	ImagenURL   string    `json:"imagenUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type CreateMascotaInput struct {
	Nombre       string `json:"nombre" binding:"required,min=1,max=100"`
	Especie      string `json:"especie" binding:"required"`
	Raza         string `json:"raza"`
	Edad         int    `json:"edad" binding:"min=0,max=15"`
	Genero       string `json:"genero" binding:"required,oneof=Macho Hembra"`
	Estado       string `json:"estado"`
	Enfermedades string `json:"enfermedades"`
	Historial    string `json:"historial"`
}

type UpdateMascotaInput struct {
	Nombre       *string `json:"nombre"`
	Especie      *string `json:"especie"`
	Raza         *string `json:"raza"`
	Edad         *int    `json:"edad"`
	Genero       *string `json:"genero"`
	Estado       *string `json:"estado"`
	Enfermedades *string `json:"enfermedades"`
	Historial    *string `json:"historial"`
}

type CreateVacunaInput struct {
	Nombre string `json:"nombre" binding:"required"`
	Fecha  string `json:"fecha" binding:"required"`
}

type CreateOperacionInput struct {
	Nombre      string `json:"nombre" binding:"required"`
	Fecha       string `json:"fecha" binding:"required"`
	Descripcion string `json:"descripcion"`
}
