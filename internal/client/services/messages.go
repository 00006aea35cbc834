package services

import (
	"errors"

	"github.com/benayed0/loopa-pro/internal/client/client"
)

// Operator-facing messages of the sign-in screens.
const (
	MsgLinkSent       = "Un lien de connexion vous a été envoyé par email."
	MsgEmailRequired  = "Veuillez saisir votre adresse email."
	MsgGenericFailure = "Une erreur est survenue. Veuillez réessayer."
	MsgMissingToken   = "Token manquant. Veuillez demander un nouveau lien de connexion."
	MsgInvalidLink    = "Le lien de connexion est invalide ou a expiré. Les liens magiques sont valables 10 minutes."
	MsgVerifyFailed   = "Une erreur est survenue lors de la vérification. Veuillez réessayer."
	MsgSessionRefused = "Le serveur a refusé votre session. Reconnectez-vous si le problème persiste."
	MsgLoadFailed     = "Impossible de charger les données. Veuillez réessayer."
)

// LinkErrorMessage is the inline message for a failed link request. The
// backend's own message wins when it sent one.
func LinkErrorMessage(err error) string {
	switch {
	case errors.Is(err, client.ErrValidation):
		return MsgEmailRequired
	case client.Message(err) != "":
		return client.Message(err)
	default:
		return MsgGenericFailure
	}
}

// VerifyErrorMessage is the inline message for a failed redemption.
func VerifyErrorMessage(err error) string {
	switch {
	case errors.Is(err, client.ErrValidation):
		return MsgMissingToken
	case errors.Is(err, client.ErrInvalidToken):
		return MsgInvalidLink
	default:
		return MsgVerifyFailed
	}
}

// CallErrorMessage is the message for a failed authenticated call. A 401
// here is only reported; the credential stays where it is.
func CallErrorMessage(err error) string {
	switch {
	case errors.Is(err, client.ErrUnauthorized):
		return MsgSessionRefused
	case client.Message(err) != "":
		return client.Message(err)
	default:
		return MsgLoadFailed
	}
}
