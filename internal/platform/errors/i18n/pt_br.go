package i18n

var ptBRCatalog = &Catalog{
	locale: "pt-BR",
	messages: map[Code]string{
		CodeInvalidArgument: "A requisição é inválida",
		CodeNotFound:        "O recurso solicitado não foi encontrado",
		CodeAlreadyExists:   "O recurso já existe",
		CodeStakeZero:       "A aposta deve ser maior que zero",

		CodeConfigTaxOutOfRange:       "A taxa deve estar entre 0 e {{.Limit}} pontos-base",
		CodeConfigTimeoutInvalid:      "Os prazos devem ser maiores que zero",
		CodeConfigMaxFadersOutOfRange: "O máximo de apostadores deve estar entre 1 e {{.Limit}}",
		CodeConfigRetriesOutOfRange:   "O máximo de novas tentativas não pode passar de {{.Limit}}",
		CodeConfigIdentityMissing:     "O campo {{.Field}} da implantação é obrigatório",
		CodeConfigFrozen:              "A implantação está congelada",
		CodeConfigNotInitialized:      "A implantação não foi inicializada",
		CodeConfigAlreadyInitialized:  "A implantação já foi inicializada",

		CodeCallerMissing:     "A identidade do chamador é obrigatória",
		CodeNotAuthority:      "Somente a autoridade da implantação pode fazer isso",
		CodeNotShooter:        "Somente o lançador pode fazer isso",
		CodeNotParticipant:    "Somente o lançador ou um apostador pode fazer isso",
		CodeShooterCannotFade: "O lançador não pode apostar contra o próprio jogo",
		CodeReservedAccount:   "Contas reservadas do livro-razão não podem atuar como chamadores",

		CodePhaseInvalid:         "Esta ação não é permitida enquanto o jogo está em {{.Phase}}",
		CodeRollPending:          "Já existe um lançamento em andamento",
		CodeGameClosed:           "O jogo está encerrado",
		CodeFaderTableFull:       "A mesa de apostadores está cheia",
		CodeRollRetriesExhausted: "Não restam novas tentativas de lançamento",

		CodeJoinWindowElapsed: "O prazo para entrar terminou",
		CodeRollWindowElapsed: "O prazo para lançar terminou",
		CodeRollWindowOpen:    "O prazo para lançar ainda está aberto",
		CodeOracleWindowOpen:  "O oráculo ainda pode entregar um resultado",

		CodeTokenMissing:          "O token da requisição de aleatoriedade é obrigatório",
		CodeTokenMismatch:         "O token não corresponde à requisição pendente",
		CodeTokenReused:           "O token já foi consumido",
		CodeOracleSignerMismatch:  "O resultado não foi assinado pelo oráculo da implantação",
		CodeOracleProgramMismatch: "O resultado não veio do programa oráculo da implantação",
		CodeCallbackStale:         "O resultado é anterior ao último retorno aceito",
		CodeAttestationInvalid:    "O atestado do oráculo é inválido",

		CodeUnknownParticipant: "O chamador não participa deste jogo",
		CodeAlreadyClaimed:     "Os fundos já foram resgatados",
		CodeNothingToClaim:     "Não há nada a resgatar",
		CodeClaimsOutstanding:  "Ainda há fundos não resgatados neste jogo",

		CodeArithmeticOverflow: "O valor excedeu o limite",
		CodeInsufficientFunds:  "A conta {{.Account}} não tem saldo suficiente",
		CodeTransferFailed:     "A transferência de fundos falhou",
	},
}
