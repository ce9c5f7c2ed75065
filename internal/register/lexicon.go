package register

// DefaultFormal returns the pt-BR lexicon used for formal text.
func DefaultFormal() map[string]string {
	return map[string]string{
		"você": "o senhor/a senhora", "vocês": "os senhores/as senhoras", "te": "lhe",
		"seu": "seu/sua", "a gente": "nós", "meu": "meu/minha", "ajudar": "auxiliar",
		"precisa": "necessita", "conseguir": "obter", "pedir": "solicitar", "mostrar": "demonstrar",
		"usar": "utilizar", "começar": "iniciar", "terminar": "finalizar", "dar": "fornecer",
		"falar": "comunicar", "entender": "compreender", "ir": "dirigir-se", "mandar": "enviar",
		"querer": "desejar", "ver": "observar", "dizer": "declarar", "achar": "considerar",
		"confirmar": "ratificar", "explicar": "elucidar", "morar": "residir", "comprar": "adquirir",
		"pedir desculpas": "apresentar escusas", "ajuda": "auxílio", "obrigado": "grato",
		"obrigada": "grata", "desculpe": "lamento", "coisa": "questão", "mas": "porém",
		"então": "portanto", "muito": "sobremaneira", "casa": "residência", "fim": "término",
		"conversa": "diálogo", "dono": "proprietário", "também": "outrossim",
		"por isso": "destarte", "chefe": "superior",
	}
}

// DefaultInformal returns the pt-BR lexicon used for casual text.
func DefaultInformal() map[string]string {
	return map[string]string{
		"você": "cê", "está": "tá", "estou": "tô", "estamos": "tamo", "para": "pra", "para o": "pro",
		"para a": "pra", "qual é": "qualé", "com o": "co", "com a": "ca", "dinheiro": "grana",
		"trabalho": "trampo", "trabalhar": "trampar", "legal": "daora", "bom": "massa",
		"muito bom": "show de bola", "problema": "B.O.", "cara": "véi", "amigo": "parça",
		"entende": "tá ligado", "entendeu": "sacou", "com certeza": "demorô", "garota": "mina",
		"garoto": "mano", "rápido": "ligeiro", "entendi": "saquei", "vamos embora": "bora",
		"festa": "rolê", "combinado": "fechou", "confusão": "treta", "conversa": "papo",
		"espera aí": "péra", "mesmo": "mermo", "tipo": "tipo assim", "de boa": "sussa",
		"ótimo": "top", "se talvez": "se pá", "complicado": "tenso", "não aguento": "não tanko",
		"pessoa chata": "cringe",
	}
}
