package store

import (
	"time"

	"elenco/internal/models"
)

const AdminUserID = "admin-user"

// DefaultUser is the administrator profile used until one is saved.
func DefaultUser() models.User {
	return models.User{
		ID:     AdminUserID,
		Name:   "Administrador",
		Avatar: "https://ui-avatars.com/api/?name=Admin&background=6366f1&color=fff",
	}
}

// Seed returns the welcome dataset shown on first run or after corruption.
// Timestamps are relative to now: one day and one hour ago.
func Seed(now time.Time) []models.Post {
	author := DefaultUser()

	return []models.Post{
		{
			ID:        "welcome-post",
			Author:    author,
			Timestamp: now.Add(-24 * time.Hour).UnixMilli(),
			Title:     "¡Bienvenidos al Blog del Elenco!",
			Content: "Estamos muy emocionados de iniciar este espacio digital. Aquí compartiremos no solo nuestros ensayos y presentaciones, sino también cómo Dios obra en cada uno de nosotros. \n\n" +
				"\"Vosotros sois la luz del mundo; una ciudad asentada sobre un monte no se puede esconder.\" - Mateo 5:14\n\n" +
				"¡Gracias por ser parte de esta familia!",
			MediaType: models.MediaImage,
			Media: &models.Media{
				Kind: models.MediaRemote,
				URL:  "https://images.unsplash.com/photo-1522158637959-30385a09e0da?auto=format&fit=crop&w=1000&q=80",
			},
			Reactions: map[models.ReactionType]int{models.ReactionLove: 12, models.ReactionLike: 5},
			Comments:  []models.Comment{},
			Tags:      []string{"Bienvenidos", "Fe", "Familia"},
		},
		{
			ID:        "rehearsal-post",
			Author:    author,
			Timestamp: now.Add(-time.Hour).UnixMilli(),
			Title:     "Momentos de Ensayo",
			Content:   "Preparando algo especial con todo el corazón. Es hermoso ver cómo cada talento se une para un propósito mayor. ¡Se vienen grandes cosas!",
			MediaType: models.MediaImage,
			Media: &models.Media{
				Kind: models.MediaRemote,
				URL:  "https://images.unsplash.com/photo-1516450360452-9312f5e86fc7?auto=format&fit=crop&w=1000&q=80",
			},
			Reactions: map[models.ReactionType]int{models.ReactionWow: 4, models.ReactionLike: 10},
			Comments:  []models.Comment{},
			Tags:      []string{"Ensayo", "Teatro", "Arte"},
		},
	}
}
