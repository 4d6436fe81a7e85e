package utils

import "golang.org/x/crypto/bcrypt"

// HashSenha gera o hash bcrypt da senha para armazenamento. O custo padrão
// do pacote é suficiente para o volume de logins deste sistema.
func HashSenha(senha string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckSenha confere a senha em texto contra o hash armazenado.
func CheckSenha(hash, senha string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(senha)) == nil
}
