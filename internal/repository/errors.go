package repository

import "errors"

// Erreurs métier renvoyées par les repositories. Les handlers les
// traduisent en statut HTTP + message utilisateur.
var (
	ErrQuantiteInvalide      = errors.New("la quantité doit être au moins 1")
	ErrPanierVide            = errors.New("le panier est vide")
	ErrEmailDejaUtilise      = errors.New("un compte avec cet email existe déjà")
	ErrIdentifiantsInvalides = errors.New("email ou mot de passe incorrect")
	ErrCompteInactif         = errors.New("votre compte est inactif, veuillez contacter un administrateur")
	ErrTransitionInvalide    = errors.New("transition de statut non autorisée")
)
