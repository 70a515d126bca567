// Package docs fornece a especificação Swagger servida em /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/users": {
            "post": {
                "tags": ["users"],
                "summary": "Cria o perfil do usuário e devolve o token de acesso",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/users/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["users"],
                "summary": "Devolve o perfil do usuário autenticado",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/goals": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["goals"],
                "summary": "Lista as metas em que o usuário participa",
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["goals"],
                "summary": "Cria uma meta",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/goals/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["goals"],
                "summary": "Devolve a meta com o progresso dos participantes",
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Forbidden"},
                    "404": {"description": "Not Found"}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["goals"],
                "summary": "Remove uma meta do criador",
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Forbidden"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/goals/{id}/progress": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["goals"],
                "summary": "Lista as linhas de progresso da meta",
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Forbidden"},
                    "404": {"description": "Not Found"}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["goals"],
                "summary": "Registra progresso e reavalia a condição de vitória",
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Forbidden"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/goals/{id}/winner-seen": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["goals"],
                "summary": "Marca que o participante viu o resultado do desafio",
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/questionnaire/start": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["questionnaire"],
                "summary": "Abre um fluxo de criação de meta",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/questionnaire/next": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["questionnaire"],
                "summary": "Avança o fluxo a partir das respostas já dadas",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/questionnaire/previous": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["questionnaire"],
                "summary": "Volta à pergunta anterior do fluxo",
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/questionnaire/options": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["questionnaire"],
                "summary": "Devolve as opções de uma pergunta do fluxo",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/questionnaire/finish": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["questionnaire"],
                "summary": "Converte a folha de respostas em uma meta",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/notifications": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["notifications"],
                "summary": "Lista as notificações do usuário",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/notifications/{id}/read": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["notifications"],
                "summary": "Marca uma notificação como lida",
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Forbidden"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/friends": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["friends"],
                "summary": "Lista os amigos do usuário",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/friends/requests": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["friends"],
                "summary": "Envia um pedido de amizade",
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Conflict"}
                }
            }
        },
        "/friends/requests/pending": {
            "get": {
                "security": [{"BearerAuth": []}],
                "tags": ["friends"],
                "summary": "Lista os pedidos de amizade pendentes",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/friends/requests/{id}/accept": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["friends"],
                "summary": "Aceita um pedido de amizade",
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Forbidden"},
                    "404": {"description": "Not Found"}
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Accountability Buddy API",
	Description:      "API de metas compartilhadas com desafios entre buddies.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
