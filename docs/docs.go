// Package docs регистрирует swagger-описание API для /swagger/.
// При изменении аннотаций в handlers описание нужно обновить вручную.
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
        "/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Описание сервиса",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ServiceInfo"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/today": {
            "get": {
                "description": "Публикация ЦБ Турции за текущий день в исходной структуре",
                "produces": ["application/json"],
                "tags": ["rates"],
                "summary": "Все курсы за сегодня",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Publication"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/currency": {
            "get": {
                "description": "Если данных нет, возвращает 200 с полем error",
                "produces": ["application/json"],
                "tags": ["rates"],
                "summary": "Курс валюты на дату",
                "parameters": [
                    {"type": "string", "description": "Код валюты (например, USD)", "name": "code", "in": "query", "required": true},
                    {"type": "string", "description": "Дата в формате YYYY-MM-DD, по умолчанию сегодня", "name": "date", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Quote"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/diff": {
            "get": {
                "produces": ["application/json"],
                "tags": ["analytics"],
                "summary": "Изменение курса за период",
                "parameters": [
                    {"type": "string", "description": "Код валюты", "name": "code", "in": "query", "required": true},
                    {"type": "integer", "default": 7, "description": "Количество дней", "name": "days", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.DiffResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/convert": {
            "get": {
                "description": "Конвертация через турецкую лиру по текущим курсам",
                "produces": ["application/json"],
                "tags": ["analytics"],
                "summary": "Конвертация суммы между валютами",
                "parameters": [
                    {"type": "string", "description": "Исходная валюта", "name": "from", "in": "query", "required": true},
                    {"type": "string", "description": "Целевая валюта", "name": "to", "in": "query", "required": true},
                    {"type": "number", "description": "Сумма", "name": "amount", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.ConvertResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/history": {
            "get": {
                "produces": ["application/json"],
                "tags": ["analytics"],
                "summary": "История курса по рабочим дням",
                "parameters": [
                    {"type": "string", "description": "Код валюты", "name": "code", "in": "query", "required": true},
                    {"type": "integer", "default": 10, "description": "Количество рабочих дней", "name": "days", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.HistoryPoint"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        },
        "/top-changes": {
            "get": {
                "produces": ["application/json"],
                "tags": ["analytics"],
                "summary": "Валюты с наибольшим изменением курса",
                "parameters": [
                    {"type": "integer", "default": 7, "description": "Количество дней", "name": "days", "in": "query"},
                    {"type": "integer", "default": 5, "description": "Количество валют в ответе", "name": "count", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.ChangeRecord"}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/models.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/models.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "models.ChangeRecord": {
            "type": "object",
            "properties": {
                "change_percent": {"type": "number"},
                "code": {"type": "string"},
                "end": {"type": "number"},
                "start": {"type": "number"}
            }
        },
        "models.ConvertResponse": {
            "type": "object",
            "properties": {
                "amount": {"type": "number"},
                "converted": {"type": "number"},
                "from": {"type": "string"},
                "rate": {"type": "number"},
                "to": {"type": "string"}
            }
        },
        "models.DiffResponse": {
            "type": "object",
            "properties": {
                "change_percent": {"type": "number"},
                "code": {"type": "string"},
                "end": {"type": "number"},
                "end_date": {"type": "string"},
                "start": {"type": "number"},
                "start_date": {"type": "string"}
            }
        },
        "models.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "models.HistoryPoint": {
            "type": "object",
            "properties": {
                "buy": {"type": "number"},
                "date": {"type": "string"},
                "sell": {"type": "number"}
            }
        },
        "models.Publication": {
            "type": "object",
            "properties": {
                "@Bulten_No": {"type": "string"},
                "@Date": {"type": "string"},
                "@Tarih": {"type": "string"},
                "Currency": {"type": "array", "items": {"$ref": "#/definitions/models.PublishedCurrency"}}
            }
        },
        "models.PublishedCurrency": {
            "type": "object",
            "properties": {
                "@CrossOrder": {"type": "string"},
                "@CurrencyCode": {"type": "string"},
                "@Kod": {"type": "string"},
                "BanknoteBuying": {"type": "string"},
                "BanknoteSelling": {"type": "string"},
                "CrossRateOther": {"type": "string"},
                "CrossRateUSD": {"type": "string"},
                "CurrencyName": {"type": "string"},
                "ForexBuying": {"type": "string"},
                "ForexSelling": {"type": "string"},
                "Isim": {"type": "string"},
                "Unit": {"type": "string"}
            }
        },
        "models.Quote": {
            "type": "object",
            "properties": {
                "banknoteBuying": {"type": "number"},
                "banknoteSelling": {"type": "number"},
                "code": {"type": "string"},
                "date": {"type": "string"},
                "forexBuying": {"type": "number"},
                "forexSelling": {"type": "number"},
                "name": {"type": "string"}
            }
        },
        "models.ServiceInfo": {
            "type": "object",
            "properties": {
                "endpoints": {"type": "array", "items": {"type": "string"}},
                "message": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "TCMB Exchange Rates API",
	Description:      "Daily exchange rates of the Central Bank of the Republic of Turkey as JSON.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
