package viewmodel

import (
	"github.com/jrsteele09/captal-web/apiclient"
	apperrors "github.com/jrsteele09/captal-web/internal/errors"
)

// Messages describes how a failed operation is explained to the user
type Messages struct {
	Fallback string
	// Status holds fixed messages per HTTP status
	Status map[int]string
	// StatusFirst makes a matching Status message win over the server's own message
	StatusFirst bool
}

// Fallback messages per operation
const (
	MsgLoginFailed        = "Erro desconhecido ao fazer login"
	MsgLoadProjects       = "Erro ao carregar projetos"
	MsgCreateProject      = "Erro ao criar projeto"
	MsgUpdateProject      = "Erro ao atualizar projeto"
	MsgLoadProject        = "Erro ao carregar projeto"
	MsgLoadAbout          = "Erro ao carregar informações"
	MsgSessionExpired     = "Sua sessão expirou. Faça login novamente."
	MsgNotAllowed         = "Você não tem permissão para esta ação"
	MsgSignUpFailed       = "Ocorreu um erro ao criar sua conta. Tente novamente."
	MsgEmailInUse         = "Este email já está em uso"
	MsgVerifyFailed       = "Erro ao verificar código"
	MsgInvalidCode        = "Código inválido ou expirado"
	MsgResendFailed       = "Erro ao reenviar código"
	MsgUserNotFound       = "Usuário não encontrado ou já verificado"
	MsgRecoveryFailed     = "Erro ao enviar email de recuperação"
	MsgResendTooSoon      = "Aguarde para reenviar o código"
	MsgPasswordResetOK    = "Senha redefinida com sucesso. Faça login."
	MsgAccountConfirmedOK = "Conta confirmada com sucesso. Faça login."
	MsgProjectCreatedOK   = "Projeto criado com sucesso"
	MsgProjectUpdatedOK   = "Projeto atualizado com sucesso"
)

// MessageFor picks the message shown for err: a status override when StatusFirst,
// then the server's message, then a status override, then the fallback.
func MessageFor(err error, m Messages) string {
	if err == nil {
		return ""
	}
	if apperrors.Is(err, apperrors.ErrSessionExpired) {
		return MsgSessionExpired
	}

	status := apiclient.StatusCode(err)
	if m.StatusFirst {
		if msg, ok := m.Status[status]; ok {
			return msg
		}
	}
	if msg := apiclient.ServerMessage(err); msg != "" {
		return msg
	}
	if msg, ok := m.Status[status]; ok {
		return msg
	}
	return m.Fallback
}
