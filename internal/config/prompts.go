package config

// Prompt templates for the categorical backend. Placeholders {speaker},
// {text} and {timestamp} are filled by the scorer; {transcript} by the
// resolution classifier.

const defaultSegmentPrompt = `Eres un analista de sentimientos especializado en llamadas bancarias en español.

Analiza el siguiente segmento de una llamada bancaria:

Hablante: {speaker}
Texto: "{text}"
Momento: {timestamp}

Proporciona EXACTAMENTE en este formato:
Sentimiento: [Positivo/Neutral/Negativo]
Intensidad: [1-5] (1=muy bajo, 5=muy alto)
Contexto: [breve explicación del contexto bancario]
`

const generalSegmentPrompt = `Analyze this conversation segment for sentiment:
Speaker: {speaker}
Text: "{text}"
Timestamp: {timestamp}

Provide in this exact format:
Sentiment: [Positive/Neutral/Negative]
Intensity: [1-5] (1=very low, 5=very high)
Context: [brief explanation]
`

const resolutionPrompt = `Analyze the following customer service call transcript and determine if the customer's issue was resolved during the call. Return ONLY a JSON object with a single key 'solved' set to 1 if the problem was resolved, or 0 if not resolved. Do not include any extra text.

Transcript:
{transcript}`
