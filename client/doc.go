// Package client é o lado "view" do rastreador de hábitos: um cliente HTTP
// tipado para a API e um View que mantém o estado da tela (linhas, checkbox,
// controle de undo e mensagem de reconhecimento).
//
// O View sempre refaz o fetch da lista inteira depois de uma mutação, em vez
// de aplicar a mudança localmente.
package client
