package domain

var Tables = []interface{}{
	&Product{},
	&ExchangeRates{},
	&StatusCheck{},
}
